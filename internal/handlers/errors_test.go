package handlers

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/jiaebaek/CurriMap/internal/security"
	"github.com/jiaebaek/CurriMap/internal/service"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        validation.ValidationError{Field: "email", Message: "email is required"},
			wantStatus: 400,
			wantCode:   errValidation,
		},
		{
			name:       "unknown error",
			err:        errors.New("unrelated"),
			wantStatus: 500,
			wantCode:   errUpstream,
		},
		{
			name:       "email taken",
			err:        service.ErrEmailTaken,
			wantStatus: 400,
			wantCode:   errValidation,
		},
		{
			name:       "missing onboarding answers",
			err:        service.ErrNoOnboardingAnswers,
			wantStatus: 400,
			wantCode:   errValidation,
		},
		{
			name:       "invalid credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: 401,
			wantCode:   errAuth,
		},
		{
			name:       "expired session",
			err:        service.ErrSessionExpired,
			wantStatus: 401,
			wantCode:   errAuth,
		},
		{
			name:       "invalid token",
			err:        security.ErrInvalidToken,
			wantStatus: 401,
			wantCode:   errAuth,
		},
		{
			name:       "child not found",
			err:        service.ErrChildNotFound,
			wantStatus: 404,
			wantCode:   errNotFound,
		},
		{
			name:       "book not found",
			err:        service.ErrBookNotFound,
			wantStatus: 404,
			wantCode:   errNotFound,
		},
		{
			name:       "no recommendation",
			err:        service.ErrNoRecommendation,
			wantStatus: 404,
			wantCode:   errNotFound,
		},
		{
			name:       "level not assigned",
			err:        service.ErrLevelNotAssigned,
			wantStatus: 404,
			wantCode:   errNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondServiceError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var body errorEnvelope
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error != tt.wantCode {
				t.Errorf("error code = %q, want %q", body.Error, tt.wantCode)
			}
			if body.Message == "" {
				t.Error("message should not be empty")
			}

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	respondServiceError(w, errors.New("pq: connection refused"))

	var body errorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Errorf("message = %q, internal detail should not leak", body.Message)
	}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, 200, map[string]string{"status": "ok"})

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data["status"] != "ok" {
		t.Errorf("data = %v, want status ok", body.Data)
	}
}
