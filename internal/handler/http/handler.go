package http

import (
	"time"

	"github.com/claudia-app/claudia-vault/internal/config"
	"github.com/claudia-app/claudia-vault/internal/logger"
	"github.com/claudia-app/claudia-vault/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration
	unlockLimiter  *clientLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		unlockLimiter:  newClientLimiter(cfg.UnlockRate, cfg.UnlockBurst),
		logger:         logger,
	}
}
