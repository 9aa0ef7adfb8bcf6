package shortenurlhandlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/aseptimu/shortyurl/internal/app/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxBodyBytes ограничивает тело POST / после распаковки.
const MaxBodyBytes int64 = 1 << 20

// ShortenRequest описывает JSON-тело POST /.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortenResponse содержит абсолютную короткую ссылку.
type ShortenResponse struct {
	ShortURL string `json:"shortUrl"`
}

// ShortenHandler обрабатывает создание коротких ссылок.
type ShortenHandler struct {
	cfg     *config.ConfigType
	Service service.URLShortener
	logger  *zap.SugaredLogger
}

// NewShortenHandler создаёт новый ShortenHandler,
// принимая конфиг, URLShortener и SugaredLogger.
func NewShortenHandler(cfg *config.ConfigType, service service.URLShortener, logger *zap.SugaredLogger) *ShortenHandler {
	return &ShortenHandler{cfg: cfg, Service: service, logger: logger}
}

// URLCreator обрабатывает POST /
// URL берётся из параметра запроса url, а если его нет, из JSON {"url": "..."}.
// Возвращает 200 и {"shortUrl": "<base>/<code>"}.
func (h *ShortenHandler) URLCreator(c *gin.Context) {
	utils.LogRequest(c, h.logger)

	input := c.Query("url")
	if input == "" {
		var err error
		if input, err = h.bodyURL(c); err != nil {
			respondError(c, err, h.logger)
			return
		}
	}

	shortURL, err := h.Service.ShortenURL(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, ShortenResponse{ShortURL: h.cfg.BaseAddress + "/" + shortURL})
}

// bodyURL достаёт url из JSON-тела. Пустое, нечитаемое или некорректное
// тело даёт пустую строку, что сервис трактует как отсутствие URL.
// Ошибка возвращается только для тела длиннее MaxBodyBytes.
func (h *ShortenHandler) bodyURL(c *gin.Context) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Debugw("Request body too large", "limit", tooLarge.Limit)
			return "", err
		}
		h.logger.Debugw("Failed to read request body", "error", err)
		return "", nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return "", nil
	}
	var req ShortenRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.logger.Debugw("Invalid JSON body", "error", err)
		return "", nil
	}
	return req.URL, nil
}
