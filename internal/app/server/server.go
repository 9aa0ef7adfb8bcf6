// Package server собирает приложение: хранилище, сервисы, хендлеры и HTTP-сервер.
package server

import (
	"context"
	"fmt"

	"github.com/aseptimu/shortyurl/internal/app/config"
	handlers "github.com/aseptimu/shortyurl/internal/app/handlers/http"
	"github.com/aseptimu/shortyurl/internal/app/service"
	httpserver "github.com/aseptimu/shortyurl/internal/app/server/http"
	"github.com/aseptimu/shortyurl/internal/app/store"
	"go.uber.org/zap"
)

// Run открывает хранилище, запускает HTTP-сервер и блокируется до отмены ctx.
// Хранилище закрывается при любом исходе.
func Run(ctx context.Context, cfg *config.ConfigType, logger *zap.SugaredLogger) error {
	storage, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Errorw("Failed to close storage", "error", err)
		}
	}()

	srv := NewHTTPServer(cfg, storage, logger)

	logger.Infow("Server is ready",
		"address", cfg.ServerAddress(),
		"mode", cfg.Mode,
		"baseAddress", cfg.BaseAddress,
	)
	return srv.Run(ctx)
}

// NewHTTPServer связывает сервисы поверх storage с HTTP-сервером.
func NewHTTPServer(cfg *config.ConfigType, storage store.Storage, logger *zap.SugaredLogger) *httpserver.Server {
	urlService := service.NewURLService(storage)
	urlGetService := service.NewGetURLService(storage)

	h := handlers.New(cfg, urlService, urlGetService, storage, logger)
	return httpserver.NewServer(cfg.ServerAddress(), cfg.AllowedOrigins, cfg.ShutdownTimeout, logger, h)
}
