package messages

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler exposes the message generation endpoint.
type Handler struct {
	generator *Generator
	logger    *logging.Logger
}

// NewHandler creates the messages HTTP handler.
func NewHandler(generator *Generator, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{generator: generator, logger: logger}
}

// Generate handles POST /api/generate-message. Generation failures degrade to
// the fallback text with a 200 so callers never have to special-case an LLM
// outage.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	text, fallback, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			http.Error(w, "invalid message type", http.StatusBadRequest)
			return
		}
		h.logger.Error("message generation failed", "type", req.Type, "error", err)
		http.Error(w, "failed to generate message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"text": text, "fallback": fallback})
}
