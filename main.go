package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"marketplace-server/confs"
	"marketplace-server/db"
	"marketplace-server/logger"
	"marketplace-server/server"

	"go.uber.org/zap"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// connect to database Postgres
	database, err := db.Connect(cfg, zlog.Named("db"))
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run server
	srv := server.NewServer(cfg, database, zlog)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zlog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("graceful shutdown incomplete", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		zlog.Warn("close database", zap.Error(err))
	}
	zlog.Info("server stopped")
}
