package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/janghq/whereabouts-board/internal/api/handlers"
	"github.com/janghq/whereabouts-board/internal/api/middleware"
	"github.com/janghq/whereabouts-board/internal/auth"
	"github.com/janghq/whereabouts-board/internal/board"
	"github.com/janghq/whereabouts-board/internal/feed"
	"github.com/janghq/whereabouts-board/internal/journal"
	"github.com/janghq/whereabouts-board/internal/logging"
	"github.com/janghq/whereabouts-board/internal/storage"
	"github.com/janghq/whereabouts-board/pkg/clock"
	"github.com/janghq/whereabouts-board/pkg/config"
	"github.com/janghq/whereabouts-board/platform/events"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Server orchestrates HTTP routing and dependencies for the board
// service: the record store and engine, the journal, the live feed with
// its summary ticker, session issuance, and the optional MySQL mirror
// and Kafka publisher.
type Server struct {
	config config.App
	logger logging.Logger
	router *gin.Engine
	db     *sql.DB

	engine    *board.Engine
	liveFeed  *feed.Feed
	ticker    *feed.Ticker
	sessions  *auth.Service
	publisher *events.Publisher
}

// NewServer wires the board dependencies together.
func NewServer() *Server {
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	server := &Server{
		config: cfg,
		logger: logger,
	}

	clk := clock.System{}
	store := board.NewMemoryStore()

	var mirror board.Mirror
	var sink journal.Sink
	if cfg.DatabaseURL != "" {
		server.db = connectDatabase(cfg, logger)
		mysqlClient := storage.NewMySQLClient(server.db)
		mirror = mysqlClient
		sink = mysqlClient

		warmStart(store, mysqlClient, logger)
	}

	ring := journal.NewRing(cfg.LogRetention,
		journal.WithSink(sink),
		journal.WithClock(clk),
		journal.WithLogger(logger),
	)

	server.liveFeed = feed.New(logger)

	var publisher board.EventPublisher
	if cfg.KafkaBrokers != "" {
		server.publisher = events.NewPublisherFromBrokerList(cfg.KafkaBrokers, cfg.KafkaTopic)
		publisher = server.publisher
	}

	server.engine = board.NewEngine(board.EngineConfig{
		Store:             store,
		Journal:           ring,
		Notifier:          server.liveFeed,
		Publisher:         publisher,
		Mirror:            mirror,
		Clock:             clk,
		Calendar:          board.WorkCalendar{StartHour: cfg.WorkdayStartHour, EndHour: cfg.WorkdayEndHour},
		Logger:            logger,
		ImplicitProvision: cfg.ImplicitProvision,
		LogTail:           cfg.LogTail,
	})

	ticker, err := feed.NewTicker(cfg.SummaryTickSpec, server.engine, server.liveFeed, logger)
	if err != nil {
		logger.Fatal("invalid summary tick spec", zap.String("spec", cfg.SummaryTickSpec), zap.Error(err))
	}
	server.ticker = ticker

	server.sessions = auth.NewService(cfg.JWTSecret, cfg.Admins, cfg.SessionTTL, clk)

	server.setupRouter()
	return server
}

// setupRouter configures the Gin router with middleware and routes.
func (s *Server) setupRouter() {
	router := gin.New()

	zapLogger := s.getZapLogger()

	// Recovery first so it catches panics from the rest of the chain.
	router.Use(ginzap.RecoveryWithZap(zapLogger, true))
	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(zapLogger, time.RFC3339, true))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.NewHealthHandler(s.logger).Health)

	authHandler := handlers.NewAuthHandler(s.logger, s.sessions)
	boardHandler := handlers.NewBoardHandler(s.logger, s.engine, clock.System{})
	employeeHandler := handlers.NewEmployeeHandler(s.logger, s.engine)
	feedHandler := handlers.NewFeedHandler(s.logger, s.liveFeed)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", authHandler.Login)

		authed := v1.Group("")
		authed.Use(middleware.RequireSession(s.sessions))
		{
			authed.POST("/board/out", boardHandler.MarkOut)
			authed.POST("/board/return", boardHandler.MarkReturn)
			authed.POST("/board/:id/clear", boardHandler.Clear)
			authed.GET("/board/snapshot", boardHandler.Snapshot)
			authed.GET("/board/logs", boardHandler.RecentLogs)

			authed.GET("/feed/status", feedHandler.StreamStatus)
			authed.GET("/feed/logs", feedHandler.StreamLogs)

			admin := authed.Group("/employees")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("", employeeHandler.Provision)
				admin.DELETE("/:id", employeeHandler.Retire)
			}
		}
	}

	s.router = router
}

// getZapLogger builds a *zap.Logger for the gin-contrib/zap middleware,
// which cannot take our Logger interface.
func (s *Server) getZapLogger() *zap.Logger {
	var zapLogger *zap.Logger
	if s.config.Environment == "production" {
		zapLogger, _ = zap.NewProduction()
	} else {
		zapLogger, _ = zap.NewDevelopment()
	}
	return zapLogger
}

// Serve starts the HTTP server, the summary ticker, and blocks until a
// shutdown signal arrives.
func (s *Server) Serve() error {
	addr := ":" + s.config.APIPort
	// No WriteTimeout: the SSE feed endpoints hold their response open
	// for the lifetime of the subscription.
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Prime the feed so the first subscriber sees a board immediately.
	s.liveFeed.PublishSnapshot(s.engine.Snapshot())
	s.ticker.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting board API server",
			zap.String("address", addr),
			zap.String("environment", s.config.Environment),
			zap.Bool("mirror_enabled", s.db != nil),
			zap.Bool("kafka_enabled", s.publisher != nil),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-quit
	s.logger.Info("shutting down server gracefully...")

	s.ticker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Error("failed to close event publisher", zap.Error(err))
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("failed to close database connection", zap.Error(err))
		}
	}

	if err := s.logger.Sync(); err != nil {
		// Ignore sync errors on stdout/stderr
		if err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" {
			return err
		}
	}

	s.logger.Info("server stopped")
	return nil
}

func connectDatabase(cfg config.App, logger logging.Logger) *sql.DB {
	db, err := sql.Open("mysql", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database connection", zap.Error(err))
	}

	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)
	db.SetConnMaxLifetime(60 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	return db
}

func warmStart(store *board.MemoryStore, mysqlClient *storage.MySQLClient, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := mysqlClient.LoadRecords(ctx)
	if err != nil {
		logger.Fatal("failed to load records from mirror", zap.Error(err))
	}
	store.Load(records)
	logger.Info("record store warmed from mirror", zap.Int("records", len(records)))
}
