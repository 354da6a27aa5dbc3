package handlers

import (
	"net/http"

	"github.com/jiaebaek/CurriMap/internal/service"
)

// RoadmapHandler handles level progress endpoints
type RoadmapHandler struct {
	roadmapService *service.RoadmapService
}

// NewRoadmapHandler creates a new roadmap handler
func NewRoadmapHandler(roadmapService *service.RoadmapService) *RoadmapHandler {
	return &RoadmapHandler{roadmapService: roadmapService}
}

// Progress handles GET /api/roadmap/{childId}
func (h *RoadmapHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	progress, err := h.roadmapService.Progress(r.Context(), childID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// LevelBooks handles GET /api/roadmap/{childId}/level/{levelId}
func (h *RoadmapHandler) LevelBooks(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}
	levelID, ok := pathID(w, r, "levelId")
	if !ok {
		return
	}

	list, err := h.roadmapService.LevelBooks(r.Context(), childID, user.ID, levelID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}
