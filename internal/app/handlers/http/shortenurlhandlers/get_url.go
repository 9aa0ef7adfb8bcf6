// Package shortenurlhandlers содержит HTTP-хендлеры для операций с короткими URL.
package shortenurlhandlers

import (
	"context"
	"net/http"

	"github.com/aseptimu/shortyurl/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// URLGetter предоставляет методы получения URL для клиентского кода.
type URLGetter interface {
	LookupURL(ctx context.Context, shortURL string) (string, error)
	ResolveURL(ctx context.Context, shortURL string) (string, error)
}

// LookupResponse отдаётся консольным клиентам (?cli=true).
type LookupResponse struct {
	URL string `json:"url"`
}

// GetURLHandler обрабатывает переход по короткой ссылке.
type GetURLHandler struct {
	service URLGetter
	logger  *zap.SugaredLogger
}

// NewGetURLHandler создаёт новый экземпляр GetURLHandler.
func NewGetURLHandler(service URLGetter, logger *zap.SugaredLogger) *GetURLHandler {
	return &GetURLHandler{service: service, logger: logger}
}

// GetURL обрабатывает GET /:shortUrl.
// С ?cli=true отдаёт исходный URL в JSON и не трогает счётчик,
// иначе засчитывает переход и отвечает 302 Found.
func (h *GetURLHandler) GetURL(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	key := c.Param("shortUrl")

	if c.Query("cli") == "true" {
		originalURL, err := h.service.LookupURL(c.Request.Context(), key)
		if err != nil {
			respondError(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, LookupResponse{URL: originalURL})
		return
	}

	originalURL, err := h.service.ResolveURL(c.Request.Context(), key)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.Header("Location", originalURL)
	c.Status(http.StatusFound)
}
