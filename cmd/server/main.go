package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"shortlist/internal/app"
	"shortlist/internal/config"
	"shortlist/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	bootstrap, cleanup, err := app.Bootstrap(bootCtx, cfg, zl)
	cancelBoot()
	if err != nil {
		zl.Fatal("failed to bootstrap app", zap.Error(err))
	}
	defer func() {
		if err := cleanup(); err != nil {
			zl.Warn("cleanup error", zap.Error(err))
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		zl.Fatal("invalid HTTP port", zap.Error(err))
	}

	zl.Info("listening",
		zap.String("addr", addr),
		zap.Int("candidates", bootstrap.Container.Store.Len()),
		zap.String("source", bootstrap.Container.Store.Source()),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zl.Error("server error", zap.Error(err))
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			zl.Warn("shutdown error", zap.Error(err))
		}
	}
}
