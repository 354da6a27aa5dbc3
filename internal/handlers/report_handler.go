package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jiaebaek/CurriMap/internal/service"
)

// ReportHandler handles reading report endpoints
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Monthly handles GET /api/reports/{childId}?year=&month= (defaults to the
// current month)
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	year, month := reportPeriod(r)
	report, err := h.reportService.Monthly(r.Context(), user.ID, childID, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Growth handles GET /api/reports/{childId}/growth
func (h *ReportHandler) Growth(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	summary, err := h.reportService.Growth(r.Context(), user.ID, childID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Email handles POST /api/reports/{childId}/email
func (h *ReportHandler) Email(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}

	year, month := reportPeriod(r)
	if err := h.reportService.EmailMonthly(r.Context(), user, childID, year, month); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSONMessage(w, http.StatusOK, nil, "report email sent")
}

func reportPeriod(r *http.Request) (year, month int) {
	now := time.Now().UTC()
	year, month = now.Year(), int(now.Month())
	if v, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		month = v
	}
	return year, month
}
