package main

import (
	"log"

	"github.com/janghq/whereabouts-board/internal/api"
)

func main() {
	srv := api.NewServer()
	if err := srv.Serve(); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
