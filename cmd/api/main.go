package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohammadpnp/roster-import/internal/bootstrap"
	"github.com/mohammadpnp/roster-import/internal/config"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/remote"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/session"
	"github.com/mohammadpnp/roster-import/internal/observability"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	api, err := remote.NewClient(cfg.Employees.BaseURL, cfg.Employees.Timeout())
	if err != nil {
		logger.Fatal("failed to create employees api client", zap.Error(err))
	}

	var store domain.UploadStore
	if cfg.Redis.Addr != "" {
		client := session.NewRedisClient(cfg.Redis, logger)
		defer func() { _ = client.Close() }()
		store = session.NewRedisStore(client, cfg.Uploads.TTL())
	} else {
		logger.Info("REDIS_ADDR not set, keeping pending uploads in memory")
		store = session.NewMemoryStore(cfg.Uploads.TTL())
	}

	audit, closeAudit, err := bootstrap.OpenAudit(context.Background(), cfg.Postgres)
	if err != nil {
		logger.Fatal("failed to open import audit", zap.Error(err))
	}
	defer closeAudit()
	if audit == nil {
		logger.Info("DATABASE_URL not set, import audit disabled")
	}

	server, views := bootstrap.NewHTTPServer(bootstrap.Dependencies{
		Config: cfg,
		Logger: logger,
		API:    api,
		Store:  store,
		Audit:  audit,
	})

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	go views.RunJanitor(janitorCtx, time.Minute)

	go func() {
		logger.Info("server starting", zap.String("addr", cfg.App.Addr()))
		if err := server.Start(cfg.App.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopJanitor()
	views.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
