package reports

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for session reports
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new reports handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes mounts the admin report endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{reportID}", h.Get)
	r.Put("/{reportID}", h.Update)
	r.Delete("/{reportID}", h.Delete)
	return r
}

// List handles GET /admin/reports. An optional clientId query filters by
// client.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []*SessionReport
		err  error
	)
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		list, err = h.repo.ListByClient(r.Context(), clientID)
	} else {
		list, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list reports", "error", err)
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": list, "count": len(list)})
}

// Create handles POST /admin/reports
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create report", "error", err)
		http.Error(w, "failed to create report", http.StatusInternalServerError)
		return
	}

	h.logger.Info("session report created", "id", report.ID, "client_id", report.ClientID)
	writeJSON(w, http.StatusCreated, report)
}

// Get handles GET /admin/reports/{reportID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	report, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get report", "error", err, "id", id)
		http.Error(w, "failed to get report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Update handles PUT /admin/reports/{reportID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")

	var req UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to update report", "error", err, "id", id)
		http.Error(w, "failed to update report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Delete handles DELETE /admin/reports/{reportID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReportNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete report", "error", err, "id", id)
		http.Error(w, "failed to delete report", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidation(err error) bool {
	return errors.Is(err, ErrMissingClient) || errors.Is(err, ErrMissingContent) || errors.Is(err, ErrMissingDate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
