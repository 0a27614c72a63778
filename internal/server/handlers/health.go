package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/enable/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	version string
	scheme  string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, version, scheme string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
		scheme:  scheme,
	}
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:  "ok",
		Version: h.version,
		Scheme:  h.scheme,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}
