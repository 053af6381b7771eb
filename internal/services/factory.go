package services

import (
	"log/slog"

	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/interfaces"
	"github.com/armax-ru/umka-online-gateway/internal/services/mock"
	"github.com/armax-ru/umka-online-gateway/internal/services/real"
)

// NewTransport selects the transport implementation: the live HTTP client
// in online mode, the in-process registrar in standalone mode.
func NewTransport(cfg *config.Config, logger *slog.Logger) interfaces.Transport {
	if cfg.StandaloneMode {
		return mock.NewRegistrar(logger)
	}
	return real.NewHTTPTransport(cfg.Timeout())
}
