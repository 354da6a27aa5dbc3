package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jiaebaek/CurriMap/internal/service"
)

// MissionHandler handles activity logging and mission endpoints
type MissionHandler struct {
	missionService *service.MissionService
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missionService *service.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// Complete handles POST /api/missions/complete. mission_id accepts a numeric
// template id or the client's synthetic "b-<bookID>" / "g-<missionID>" key.
func (h *MissionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		ChildID      int64   `json:"child_id"`
		MissionID    string  `json:"mission_id"`
		BookID       *int64  `json:"book_id"`
		ActivityType string  `json:"activity_type"`
		Reaction     *string `json:"reaction"`
		IsManualLog  bool    `json:"is_manual_log"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errValidation, "invalid request body")
		return
	}
	if req.ChildID <= 0 {
		respondError(w, http.StatusBadRequest, errValidation, "child_id is required")
		return
	}

	in := service.CompleteMissionInput{
		ChildID:      req.ChildID,
		BookID:       req.BookID,
		ActivityType: req.ActivityType,
		Reaction:     req.Reaction,
		IsManualLog:  req.IsManualLog,
	}
	if req.MissionID != "" {
		bookID, missionID, ok := parseMissionKey(req.MissionID)
		if !ok {
			respondError(w, http.StatusBadRequest, errValidation, "invalid mission_id")
			return
		}
		if bookID != nil {
			in.BookID = bookID
		}
		in.MissionID = missionID
	}

	log, err := h.missionService.Complete(r.Context(), user.ID, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, log)
}

// Today handles GET /api/missions/today/{childId}
func (h *MissionHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	missions, err := h.missionService.Today(r.Context(), user.ID, childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, missions)
}

// History handles GET /api/missions/history/{childId}
func (h *MissionHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, total, err := h.missionService.History(r.Context(), user.ID, childID, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"total": total,
	})
}

// Stats handles GET /api/missions/stats/{childId}
func (h *MissionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	stats, err := h.missionService.Stats(r.Context(), user.ID, childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// parseMissionKey resolves a mission reference to a book or template id.
// "b-42" names book 42, "g-7" names template 7, a bare number is a template.
func parseMissionKey(key string) (bookID, missionID *int64, ok bool) {
	parse := func(s string) (*int64, bool) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		return &id, true
	}

	switch {
	case strings.HasPrefix(key, "b-"):
		id, valid := parse(strings.TrimPrefix(key, "b-"))
		return id, nil, valid
	case strings.HasPrefix(key, "g-"):
		id, valid := parse(strings.TrimPrefix(key, "g-"))
		return nil, id, valid
	default:
		id, valid := parse(key)
		return nil, id, valid
	}
}
