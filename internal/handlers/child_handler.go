package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jiaebaek/CurriMap/internal/service"
)

// ChildHandler handles child profile endpoints
type ChildHandler struct {
	childService      *service.ChildService
	onboardingService *service.OnboardingService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService, onboardingService *service.OnboardingService) *ChildHandler {
	return &ChildHandler{childService: childService, onboardingService: onboardingService}
}

type childRequest struct {
	Nickname    string  `json:"nickname"`
	BirthMonths int     `json:"birth_months"`
	Gender      *string `json:"gender"`
	ThemeIDs    []int64 `json:"theme_ids"`
}

// List handles GET /api/children
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	children, err := h.childService.GetChildren(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

// Get handles GET /api/children/{childId}
func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	child, err := h.childService.GetChild(r.Context(), childID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// Create handles POST /api/children
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errValidation, "invalid request body")
		return
	}

	child, err := h.childService.CreateChild(r.Context(), user.ID, req.Nickname, req.BirthMonths, req.Gender, req.ThemeIDs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, child)
}

// Update handles PUT /api/children/{childId}
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errValidation, "invalid request body")
		return
	}

	child, err := h.childService.UpdateChild(r.Context(), childID, user.ID, req.Nickname, req.BirthMonths, req.Gender)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// SetInterests handles PUT /api/children/{childId}/interests
func (h *ChildHandler) SetInterests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	var req struct {
		ThemeIDs []int64 `json:"theme_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errValidation, "invalid request body")
		return
	}

	child, err := h.childService.SetInterests(r.Context(), childID, user.ID, req.ThemeIDs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, child)
}

// OnboardingQuestions handles GET /api/children/{childId}/onboarding
func (h *ChildHandler) OnboardingQuestions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	questions, err := h.onboardingService.Questions(r.Context(), childID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, questions)
}

// OnboardingAnswer handles POST /api/children/{childId}/onboarding
func (h *ChildHandler) OnboardingAnswer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	var req struct {
		OptionID int64 `json:"option_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OptionID == 0 {
		respondError(w, http.StatusBadRequest, errValidation, "option_id is required")
		return
	}

	if err := h.onboardingService.Answer(r.Context(), childID, user.ID, req.OptionID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSONMessage(w, http.StatusOK, nil, "answer recorded")
}

// OnboardingComplete handles POST /api/children/{childId}/onboarding/complete
func (h *ChildHandler) OnboardingComplete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	child, err := h.onboardingService.Complete(r.Context(), childID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSONMessage(w, http.StatusOK, child, "level assigned")
}

// pathID parses a numeric path value, writing a validation error on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, errValidation, "invalid "+name)
		return 0, false
	}
	return id, true
}
