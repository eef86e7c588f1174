package handlers

import (
	"io"

	"github.com/janghq/whereabouts-board/internal/feed"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler serves the live feed over server-sent events. Each stream
// starts with the current state, then carries updates until the client
// disconnects; the subscription is torn down when the handler returns.
type FeedHandler struct {
	logger logging.Logger
	feed   *feed.Feed
}

// NewFeedHandler creates a new feed handler.
func NewFeedHandler(logger logging.Logger, f *feed.Feed) *FeedHandler {
	return &FeedHandler{
		logger: logger.With(zap.String("handler", "feed")),
		feed:   f,
	}
}

// StreamStatus streams board snapshots as "status" SSE events.
func (h *FeedHandler) StreamStatus(c *gin.Context) {
	ch, cancel := h.feed.SubscribeStatus()
	defer cancel()

	h.setStreamHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("status", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// StreamLogs streams journal tails as "logs" SSE events.
func (h *FeedHandler) StreamLogs(c *gin.Context) {
	ch, cancel := h.feed.SubscribeLogs()
	defer cancel()

	h.setStreamHeaders(c)
	c.Stream(func(w io.Writer) bool {
		select {
		case entries, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("logs", entries)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *FeedHandler) setStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
}
