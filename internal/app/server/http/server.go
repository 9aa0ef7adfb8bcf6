// Package http настраивает middleware и запускает HTTP-сервер с корректной остановкой.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	http2 "github.com/aseptimu/shortyurl/internal/app/handlers/http"
	"github.com/aseptimu/shortyurl/internal/app/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *zap.SugaredLogger
}

func NewServer(addr string, allowedOrigins []string, shutdownTimeout time.Duration, logger *zap.SugaredLogger, h http2.Handlers) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	logger.Debug("Setting up middleware")
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Errorw("Panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		}),
		middleware.MiddlewareLogger(logger),
		middleware.CORSMiddleware(allowedOrigins),
		middleware.GzipMiddleware(),
	)
	h.RegisterRoutes(r)

	return &Server{
		srv:             &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// Handler возвращает корневой обработчик сервера.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run запускает сервер и блокируется до отмены ctx или ошибки запуска.
// После отмены ctx сервер дожидается активных запросов не дольше shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Infow("Initializing server", "address", s.srv.Addr)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		s.logger.Infow("Shutting down server", "signal", "context cancelled")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorw("Error shutting down server", "error", err)
		}
	}()

	s.logger.Infow("Starting HTTP server", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		close(stop)
		wg.Wait()
		return err
	}
	wg.Wait()
	return nil
}
