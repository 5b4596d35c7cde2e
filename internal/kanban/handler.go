package kanban

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the workflow board
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new kanban handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Routes mounts the admin board endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{taskID}", h.Update)
	r.Post("/{taskID}/move", h.Move)
	r.Delete("/{taskID}", h.Delete)
	return r
}

// List handles GET /admin/kanban
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list tasks", "error", err)
		http.Error(w, "failed to list tasks", http.StatusInternalServerError)
		return
	}

	// Group by column so the board renders without client-side sorting.
	board := map[Status][]*Task{StatusTodo: {}, StatusDoing: {}, StatusDone: {}}
	for _, t := range list {
		board[t.Status] = append(board[t.Status], t)
	}
	writeJSON(w, http.StatusOK, board)
}

// Create handles POST /admin/kanban
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create task", "error", err)
		http.Error(w, "failed to create task", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Update handles PUT /admin/kanban/{taskID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			http.Error(w, "task not found", http.StatusNotFound)
		case isValidation(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to update task", "error", err, "id", id)
			http.Error(w, "failed to update task", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Move handles POST /admin/kanban/{taskID}/move
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")

	var req struct {
		Status Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.repo.Move(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrTaskNotFound):
			http.Error(w, "task not found", http.StatusNotFound)
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to move task", "error", err, "id", id)
			http.Error(w, "failed to move task", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /admin/kanban/{taskID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskID")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete task", "error", err, "id", id)
		http.Error(w, "failed to delete task", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func isValidation(err error) bool {
	return errors.Is(err, ErrMissingTitle) || errors.Is(err, ErrInvalidStatus)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
