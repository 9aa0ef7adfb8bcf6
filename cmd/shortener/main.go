package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/logger"
	"github.com/aseptimu/shortyurl/internal/app/server"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	sugar, err := logger.New(cfg.Mode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow("Starting shortener", "port", cfg.Port, "mode", cfg.Mode)
	if err := server.Run(ctx, cfg, sugar); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Info("Server stopped")
}
