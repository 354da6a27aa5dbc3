package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jiaebaek/CurriMap/internal/security"
	"github.com/jiaebaek/CurriMap/internal/service"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// Error taxonomy names carried in failure envelopes
const (
	errValidation  = "validation_error"
	errAuth        = "auth_error"
	errNotFound    = "not_found"
	errRateLimited = "rate_limited"
	errUpstream    = "upstream_error"
)

type successEnvelope struct {
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	respondJSONMessage(w, status, data, "")
}

func respondJSONMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Data: data, Message: message}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, name, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorEnvelope{Error: name, Message: message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// respondServiceError maps a service error onto the HTTP taxonomy. Anything
// unrecognized is an upstream failure and gets logged with its cause.
func respondServiceError(w http.ResponseWriter, err error) {
	var verr validation.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, errValidation, verr.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrNoOnboardingAnswers):
		respondError(w, http.StatusBadRequest, errValidation, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, security.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, errAuth, err.Error())
	case errors.Is(err, service.ErrChildNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrMissionNotFound),
		errors.Is(err, service.ErrOptionNotFound),
		errors.Is(err, service.ErrLevelNotAssigned),
		errors.Is(err, service.ErrLevelNotFound),
		errors.Is(err, service.ErrNoRecommendation):
		respondError(w, http.StatusNotFound, errNotFound, err.Error())
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, errUpstream, "internal server error")
	}
}
