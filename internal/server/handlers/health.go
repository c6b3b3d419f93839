package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/videotube/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/healthz
// Health check endpoint для мониторинга
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(h.logger, w, http.StatusOK, api.HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}
