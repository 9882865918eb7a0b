package handler

import (
	"github.com/emzola/watchlist/config"
	"github.com/emzola/watchlist/internal/jsonlog"
	"github.com/emzola/watchlist/internal/throttle"
	"github.com/emzola/watchlist/service"
)

// Handler defines Handler layer.
type Handler struct {
	config    config.Config
	logger    *jsonlog.Logger
	throttler *throttle.Throttler
	service   service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, throttler *throttle.Throttler, service service.Service) *Handler {
	return &Handler{
		config:    cfg,
		logger:    logger,
		throttler: throttler,
		service:   service,
	}
}
