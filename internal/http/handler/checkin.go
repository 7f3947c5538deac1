package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/mindtrackhq/mindtrack-api/internal/model"
	"github.com/mindtrackhq/mindtrack-api/internal/service"
)

type CheckInHandler struct {
	svc *service.CheckInService
}

func NewCheckInHandler(svc *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{svc: svc}
}

// ServeHTTP routes /api/v1/checkins, /api/v1/checkins/stats,
// /api/v1/checkins/today and /api/v1/checkins/{id}.
func (h *CheckInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/checkins")
	path = strings.Trim(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
	case "stats":
		h.requireGet(w, r, h.handleStats)
	case "today":
		h.requireGet(w, r, h.handleToday)
	default:
		if r.Method != http.MethodPut {
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
			return
		}
		h.handleUpdate(w, r, path)
	}
}

func (h *CheckInHandler) requireGet(w http.ResponseWriter, r *http.Request, handler func(http.ResponseWriter, *http.Request)) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	handler(w, r)
}

// goalList decodes the goals field as either an array of strings or,
// for older clients, a single string wrapped into a one-element list.
type goalList []string

func (g *goalList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*g = goalList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*g = goalList(many)
	return nil
}

type createCheckInRequest struct {
	Goals      goalList `json:"goals"`
	Intentions string   `json:"intentions"`
	Date       *string  `json:"date,omitempty"`
}

func (h *CheckInHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	var req createCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	checkin, err := h.svc.Create(r.Context(), userID, service.CreateCheckInInput{
		Goals:      req.Goals,
		Intentions: req.Intentions,
		Date:       req.Date,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, checkin)
}

type updateCheckInRequest struct {
	Goals      goalList `json:"goals,omitempty"`
	Intentions *string  `json:"intentions,omitempty"`
}

func (h *CheckInHandler) handleUpdate(w http.ResponseWriter, r *http.Request, checkinID string) {
	userID := getUserID(r)

	var req updateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	checkin, err := h.svc.Update(r.Context(), userID, checkinID, service.UpdateCheckInInput{
		Goals:      req.Goals,
		Intentions: req.Intentions,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, checkin)
}

func (h *CheckInHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	result, err := h.svc.List(r.Context(), model.CheckInListParams{
		UserID: userID,
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *CheckInHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	stats, err := h.svc.Stats(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

func (h *CheckInHandler) handleToday(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r)

	checkin, err := h.svc.Today(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, checkin)
}

func queryInt(r *http.Request, key string, def int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}
