package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jansaniel95/jan-eds-training/internal/block"
	"github.com/jansaniel95/jan-eds-training/internal/config"
	"github.com/jansaniel95/jan-eds-training/internal/fragments"
	"github.com/jansaniel95/jan-eds-training/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fetcher := fragments.NewClient(fragments.Config{
		Endpoint:  cfg.Fragments.Endpoint,
		AuthToken: cfg.Fragments.AuthToken,
		Timeout:   cfg.Fragments.Timeout,
	}, logger.Named("fragments"))
	decorator := block.NewDecorator(fetcher, logger.Named("block"))

	srv := newServer(cfg, decorator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("blocks server listening",
		zap.String("addr", srv.Addr),
		zap.String("endpoint", cfg.Fragments.Endpoint))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
