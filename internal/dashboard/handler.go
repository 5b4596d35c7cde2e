package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler serves the admin dashboard snapshot
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Snapshot handles GET /admin/dashboard
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard", "error", err)
		http.Error(w, "failed to build dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(stats)
}
