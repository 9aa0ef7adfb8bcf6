package http

import (
	"net/http"

	"github.com/aseptimu/shortyurl/internal/app/config"
	"github.com/aseptimu/shortyurl/internal/app/handlers/http/dbhandlers"
	"github.com/aseptimu/shortyurl/internal/app/handlers/http/shortenurlhandlers"
	"github.com/aseptimu/shortyurl/internal/app/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers interface {
	RegisterRoutes(r *gin.Engine)
}

type handlersImpl struct {
	cfg       *config.ConfigType
	urlSvc    service.URLShortener
	urlGetSvc shortenurlhandlers.URLGetter
	pinger    dbhandlers.Pinger
	logger    *zap.SugaredLogger
}

func New(
	cfg *config.ConfigType,
	urlSvc service.URLShortener,
	urlGetSvc shortenurlhandlers.URLGetter,
	pinger dbhandlers.Pinger,
	logger *zap.SugaredLogger,
) Handlers {
	return &handlersImpl{
		cfg:       cfg,
		urlSvc:    urlSvc,
		urlGetSvc: urlGetSvc,
		pinger:    pinger,
		logger:    logger,
	}
}

func (h *handlersImpl) RegisterRoutes(r *gin.Engine) {
	r.GET("/", hello)
	r.GET("/ping", dbhandlers.NewPingHandler(h.pinger, h.logger).Ping)
	r.GET("/:shortUrl", shortenurlhandlers.NewGetURLHandler(h.urlGetSvc, h.logger).GetURL)
	r.POST("/", shortenurlhandlers.NewShortenHandler(h.cfg, h.urlSvc, h.logger).URLCreator)
}

func hello(c *gin.Context) {
	c.JSON(http.StatusOK, shortenurlhandlers.MessageResponse{Message: "Hello World"})
}
