package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var gzipPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipWriter оборачивает gin.ResponseWriter и сжимает тело ответа.
// gzip.Writer берётся из пула только при первой записи, поэтому
// ответы без тела (например, 302) уходят без Content-Encoding.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	if g.writer == nil {
		h := g.ResponseWriter.Header()
		h.Set("Content-Encoding", "gzip")
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")

		g.writer = gzipPool.Get().(*gzip.Writer)
		g.writer.Reset(g.ResponseWriter)
	}
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) close() {
	if g.writer == nil {
		return
	}
	g.writer.Close()
	gzipPool.Put(g.writer)
	g.writer = nil
}

// GzipMiddleware возвращает Gin-middleware, который:
//  1. при входящем запросе с заголовком Content-Encoding: gzip
//     распаковывает тело запроса;
//  2. при наличии Accept-Encoding: gzip в заголовках запроса
//     сжимает исходящий ответ, если у него есть тело.
func GzipMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Content-Encoding") == "gzip" {
			reader, err := gzip.NewReader(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Bad Request"})
				return
			}
			defer reader.Close()
			c.Request.Body = io.NopCloser(reader)
			c.Request.Header.Del("Content-Encoding")
		}

		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gzWriter := &gzipWriter{ResponseWriter: c.Writer}
		c.Writer = gzWriter
		defer gzWriter.close()

		c.Next()
	}
}
