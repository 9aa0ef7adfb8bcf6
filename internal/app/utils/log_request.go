package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogRequest пишет отладочную запись о вызове эндпоинта.
func LogRequest(c *gin.Context, logger *zap.SugaredLogger) {
	logger.Debugw("Endpoint called",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"param", c.Param("shortUrl"),
		"remote_addr", c.ClientIP(),
	)
}
