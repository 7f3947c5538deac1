package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mindtrackhq/mindtrack-api/internal/middleware"
	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /api/v1/todos, /api/v1/todos/import,
// /api/v1/todos/imported, /api/v1/todos/{id} and
// /api/v1/todos/{id}/subtasks.
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/todos")
	path = strings.Trim(path, "/")

	parts := strings.SplitN(path, "/", 2)
	head := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	switch {
	case head == "":
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	case head == "import" && subPath == "":
		if r.Method != http.MethodPost {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleImport(w, r)
	case head == "imported" && subPath == "":
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleCheckImported(w, r)
	case subPath == "subtasks":
		if r.Method != http.MethodPost {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleBreakdown(w, r, head)
	case subPath == "":
		switch r.Method {
		case http.MethodPut:
			h.handleUpdate(w, r, head)
		case http.MethodDelete:
			h.handleDelete(w, r, head)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	}
}

type createTodoRequest struct {
	Text      string  `json:"text"`
	CheckinID *string `json:"checkin_id,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	todo, err := h.svc.Create(r.Context(), userID, service.CreateTodoInput{
		Text:      req.Text,
		CheckinID: req.CheckinID,
		ParentID:  req.ParentID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, todoID string) {
	userID := getUserID(r)

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	todo, err := h.svc.Update(r.Context(), userID, todoID, service.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, todoID string) {
	userID := getUserID(r)

	if err := h.svc.Delete(r.Context(), userID, todoID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	result, err := h.svc.List(r.Context(), model.TodoListParams{
		UserID: userID,
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 50),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

type importRequest struct {
	CheckinID string `json:"checkin_id"`
}

func (h *TodoHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	result, err := h.svc.ImportGoals(r.Context(), userID, req.CheckinID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// A repeat import is not an error; it just reports that the todos
	// already exist.
	if result.AlreadyImported {
		WriteJSON(w, http.StatusOK, result)
		return
	}
	WriteJSON(w, http.StatusCreated, result)
}

func (h *TodoHandler) handleCheckImported(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	imported, err := h.svc.CheckImported(r.Context(), userID, r.URL.Query().Get("checkin_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"imported": imported})
}

type breakdownRequest struct {
	Subtasks []string `json:"subtasks"`
}

func (h *TodoHandler) handleBreakdown(w http.ResponseWriter, r *http.Request, todoID string) {
	userID := getUserID(r)

	var req breakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	created, err := h.svc.Breakdown(r.Context(), userID, todoID, req.Subtasks)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if len(created) == 0 {
		status = http.StatusOK
	}
	WriteJSON(w, status, map[string][]model.Todo{"subtasks": created})
}

func getUserID(r *http.Request) string {
	return middleware.GetUserID(r)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "access denied")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
