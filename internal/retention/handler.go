package retention

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the retention tool
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new retention handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the admin retention endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/candidates", h.Candidates)
	r.Post("/{clientID}/message", h.Message)
	return r
}

// Candidates handles GET /admin/retention/candidates
func (h *Handler) Candidates(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Candidates(r.Context())
	if err != nil {
		h.logger.Error("failed to list retention candidates", "error", err)
		http.Error(w, "failed to list candidates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": list, "count": len(list)})
}

// Message handles POST /admin/retention/{clientID}/message
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")

	text, fallback, err := h.service.DraftMessage(r.Context(), id)
	if err != nil {
		if errors.Is(err, clients.ErrClientNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to draft retention message", "error", err, "client_id", id)
		http.Error(w, "failed to draft message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"text": text, "fallback": fallback})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
