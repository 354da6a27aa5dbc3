package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/service"
)

// BookHandler handles catalog and recommendation endpoints
type BookHandler struct {
	catalogService   *service.CatalogService
	recommendService *service.RecommendService
}

// NewBookHandler creates a new book handler
func NewBookHandler(catalogService *service.CatalogService, recommendService *service.RecommendService) *BookHandler {
	return &BookHandler{catalogService: catalogService, recommendService: recommendService}
}

// Search handles GET /api/books
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.BookSearchFilter{}

	if v := query.Get("min_ar"); v != "" {
		minAR, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, errValidation, "invalid min_ar")
			return
		}
		filter.MinAR = &minAR
	}
	if v := query.Get("max_ar"); v != "" {
		maxAR, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, errValidation, "invalid max_ar")
			return
		}
		filter.MaxAR = &maxAR
	}

	var ok bool
	if filter.ThemeIDs, ok = parseIDList(w, query.Get("themes"), "themes"); !ok {
		return
	}
	if filter.MoodIDs, ok = parseIDList(w, query.Get("moods"), "moods"); !ok {
		return
	}
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	filter.Offset, _ = strconv.Atoi(query.Get("offset"))

	page, err := h.catalogService.Search(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// Get handles GET /api/books/{bookId}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	bookID, ok := pathID(w, r, "bookId")
	if !ok {
		return
	}

	book, err := h.catalogService.GetBook(r.Context(), bookID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, book)
}

// Daily handles GET /api/books/daily/{childId}
func (h *BookHandler) Daily(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	recommendation, err := h.recommendService.DailyBook(r.Context(), childID, user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recommendation)
}

// Themes handles GET /api/themes
func (h *BookHandler) Themes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.catalogService.ListThemes(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if themes == nil {
		themes = []models.Theme{}
	}
	respondJSON(w, http.StatusOK, themes)
}

// Moods handles GET /api/moods
func (h *BookHandler) Moods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.catalogService.ListMoods(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if moods == nil {
		moods = []models.Mood{}
	}
	respondJSON(w, http.StatusOK, moods)
}

// parseIDList parses a comma separated id list query parameter
func parseIDList(w http.ResponseWriter, raw, name string) ([]int64, bool) {
	if raw == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, errValidation, "invalid "+name)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
