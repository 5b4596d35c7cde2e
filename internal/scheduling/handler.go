package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// ConfirmationNotifier delivers the booking confirmation out of band. Failures
// are logged, never surfaced to the booker.
type ConfirmationNotifier interface {
	NotifyBooking(ctx context.Context, email, name string, appt *appointments.Appointment)
}

// Handler exposes the public booking endpoints.
type Handler struct {
	service  *Service
	notifier ConfirmationNotifier
	logger   *logging.Logger
}

// NewHandler creates the booking HTTP handler. notifier may be nil.
func NewHandler(service *Service, notifier ConfirmationNotifier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, notifier: notifier, logger: logger}
}

// Routes mounts the public booking surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/slots", h.Slots)
	r.Post("/", h.Create)
	return r
}

type bookingRequest struct {
	Client ClientInput `json:"client"`
	Slot   SlotInput   `json:"slot"`
}

// Slots handles GET /booking/slots?date=YYYY-MM-DD.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date query parameter is required", http.StatusBadRequest)
		return
	}

	slots, err := h.service.AvailableSlots(r.Context(), date)
	if err != nil {
		h.logger.Error("slot lookup failed", "date", date, "error", err)
		http.Error(w, "failed to compute availability", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"date": date, "slots": slots})
}

// Create handles POST /booking.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.service.RegisterBooking(r.Context(), req.Client, req.Slot)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingName), errors.Is(err, ErrMissingDateTime):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrSlotTaken):
			http.Error(w, "slot is no longer available", http.StatusConflict)
		default:
			h.logger.Error("booking failed", "error", err)
			http.Error(w, "failed to register booking", http.StatusInternalServerError)
		}
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyBooking(r.Context(), req.Client.Email, req.Client.Name, appt)
	}

	writeJSON(w, http.StatusCreated, appt)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
