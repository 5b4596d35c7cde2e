package finance

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for financial records
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new finance handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes mounts the admin finance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/summary", h.Summary)
	r.Delete("/{recordID}", h.Delete)
	return r
}

// List handles GET /admin/finance
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list financial records", "error", err)
		http.Error(w, "failed to list records", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records, "count": len(records)})
}

// Create handles POST /admin/finance
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rec, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create financial record", "error", err)
		http.Error(w, "failed to create record", http.StatusInternalServerError)
		return
	}

	h.logger.Info("financial record created", "id", rec.ID, "type", rec.Type, "amount", rec.Amount)
	writeJSON(w, http.StatusCreated, rec)
}

// Summary handles GET /admin/finance/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to summarize finances", "error", err)
		http.Error(w, "failed to summarize finances", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, Summarize(records))
}

// Delete handles DELETE /admin/finance/{recordID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete financial record", "error", err, "id", id)
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidation(err error) bool {
	return errors.Is(err, ErrMissingDescription) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrMissingDate)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
