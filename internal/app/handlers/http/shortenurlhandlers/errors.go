package shortenurlhandlers

import (
	"errors"
	"net/http"

	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageResponse — тело ответа с ошибкой или приветствием.
type MessageResponse struct {
	Message string `json:"message"`
}

const (
	msgBadRequest          = "Bad Request"
	msgNotFound            = "Not Found"
	msgTooLarge            = "Request Entity Too Large"
	msgInternalServerError = "Internal Server Error"
	msgGenerationExhausted = "Could not generate unique short URL"
)

// respondError единственное место, где ошибки сервиса превращаются в HTTP-ответы.
// Текст внутренних ошибок только логируется и клиенту не отдаётся.
func respondError(c *gin.Context, err error, logger *zap.SugaredLogger) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, MessageResponse{msgTooLarge})
	case errors.Is(err, service.ErrEmptyURL):
		c.AbortWithStatusJSON(http.StatusBadRequest, MessageResponse{msgBadRequest})
	case errors.Is(err, service.ErrURLNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, MessageResponse{msgNotFound})
	case errors.Is(err, service.ErrGenerationExhausted):
		logger.Errorw("Short URL generation exhausted", "attempts", service.MaxAttempts, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, MessageResponse{msgGenerationExhausted})
	default:
		logger.Errorw("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, MessageResponse{msgInternalServerError})
	}
}
