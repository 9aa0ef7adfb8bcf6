package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddlewareLogger(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MiddlewareLogger(logger))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entries := obs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "Request", entries[0].Message)
	assert.Equal(t, "/test", fields["uri"])
	assert.Equal(t, "GET", fields["method"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
}

func TestMiddlewareLogger_Redirect(t *testing.T) {
	core, obs := observer.New(zap.InfoLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MiddlewareLogger(zap.New(core).Sugar()))
	router.GET("/:code", func(c *gin.Context) {
		c.Header("Location", "https://example.com")
		c.Status(http.StatusFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/abc123", nil))

	require.Equal(t, 1, obs.Len())
	fields := obs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusFound, fields["status"])
	assert.EqualValues(t, 0, fields["size"])
}
