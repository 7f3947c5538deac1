package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mindtrackhq/mindtrack-api/internal/service"
)

type JournalHandler struct {
	svc *service.JournalService
}

func NewJournalHandler(svc *service.JournalService) *JournalHandler {
	return &JournalHandler{svc: svc}
}

// ServeHTTP routes /api/v1/journal and /api/v1/journal/today.
func (h *JournalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/journal")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleListAll(w, r)
		case http.MethodPost:
			h.handleSave(w, r)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	case "today":
		if r.Method != http.MethodGet {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleToday(w, r)
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	}
}

type saveJournalRequest struct {
	Entry string `json:"entry"`
}

func (h *JournalHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req saveJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	entry, err := h.svc.Save(r.Context(), userID, req.Entry)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) handleToday(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	entry, err := h.svc.Today(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) handleListAll(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	entries, err := h.svc.ListAll(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
