package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for appointments
type Handler struct {
	repo    Repository
	clients clients.Repository
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler. The clients repository is
// used to stamp lastSessionDate when a session completes.
func NewHandler(repo Repository, clientsRepo clients.Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, clients: clientsRepo, logger: logger}
}

// Routes mounts the admin appointment endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{appointmentID}", h.Get)
	r.Post("/{appointmentID}/complete", h.Complete)
	r.Post("/{appointmentID}/cancel", h.Cancel)
	r.Delete("/{appointmentID}", h.Delete)
	return r
}

// List handles GET /admin/appointments[?date=YYYY-MM-DD]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []*Appointment
		err  error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		list, err = h.repo.ListByDate(r.Context(), date)
	} else {
		list, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list appointments", "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": list, "count": len(list)})
}

// Create handles POST /admin/appointments (manual scheduling)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	taken, err := h.repo.SlotTaken(r.Context(), req.Date, req.Time)
	if err != nil {
		h.logger.Error("slot check failed", "error", err)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}
	if taken {
		http.Error(w, "slot already booked", http.StatusConflict)
		return
	}

	appt, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create appointment", "error", err)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	h.logger.Info("appointment created", "id", appt.ID, "date", appt.Date, "time", appt.Time)
	writeJSON(w, http.StatusCreated, appt)
}

// Get handles GET /admin/appointments/{appointmentID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	appt, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get appointment", "error", err, "id", id)
		http.Error(w, "failed to get appointment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// Complete handles POST /admin/appointments/{appointmentID}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	appt, ok := h.transition(w, r, StatusCompleted)
	if !ok {
		return
	}

	if h.clients != nil {
		if err := h.clients.TouchLastSession(r.Context(), appt.ClientID, appt.Date); err != nil {
			// Session completion already committed; the stamp is best effort.
			h.logger.Warn("failed to stamp last session date", "error", err, "client_id", appt.ClientID)
		}
	}

	writeJSON(w, http.StatusOK, appt)
}

// Cancel handles POST /admin/appointments/{appointmentID}/cancel. The freed
// slot becomes bookable again.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	appt, ok := h.transition(w, r, StatusCancelled)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, status Status) (*Appointment, bool) {
	id := chi.URLParam(r, "appointmentID")
	appt, err := h.repo.SetStatus(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
		case errors.Is(err, ErrAlreadyFinal):
			http.Error(w, "appointment is not scheduled", http.StatusConflict)
		default:
			h.logger.Error("failed to update appointment status", "error", err, "id", id)
			http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		}
		return nil, false
	}
	h.logger.Info("appointment status updated", "id", id, "status", status)
	return appt, true
}

// Delete handles DELETE /admin/appointments/{appointmentID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "appointmentID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete appointment", "error", err, "id", id)
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
