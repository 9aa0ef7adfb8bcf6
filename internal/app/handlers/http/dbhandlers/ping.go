// Package dbhandlers содержит HTTP-хендлеры для проверки доступности хранилища.
package dbhandlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger описывает интерфейс, который умеет «пинговать» хранилище.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler обрабатывает HTTP-запросы /ping, проверяя Pinger.
type PingHandler struct {
	db     Pinger
	logger *zap.SugaredLogger
}

// NewPingHandler создаёт новый PingHandler с переданным Pinger.
func NewPingHandler(db Pinger, logger *zap.SugaredLogger) *PingHandler {
	return &PingHandler{db: db, logger: logger}
}

// Ping обрабатывает GET /ping.
// Без хранилища отвечает 503, при ошибке проверки — 500 без подробностей,
// иначе 200 {"status":"ok"}.
func (h *PingHandler) Ping(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Service Unavailable"})
		return
	}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("Storage ping failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
