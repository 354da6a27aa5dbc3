package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

func newReportService(t *testing.T, env *testEnv) *ReportService {
	t.Helper()
	emailService, err := NewEmailService("", "", "")
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	return NewReportService(env.childService, env.children, env.missions, emailService)
}

func TestMonthlyReport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	reports := newReportService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")

	bookID := env.insertBook(t, "Story Book", 1.5, 750)

	// Two readings of one book, a video, and a listening session.
	for i := 0; i < 2; i++ {
		if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			BookID:       &bookID,
			ActivityType: models.ActivityReading,
		}); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
	}
	for _, activity := range []string{models.ActivityVideo, models.ActivityFocusedListening} {
		if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			ActivityType: activity,
		}); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
	}

	now := time.Now().UTC()
	report, err := reports.Monthly(ctx, user.ID, child.ID, now.Year(), int(now.Month()))
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}

	if report.Summary.TotalMissions != 4 {
		t.Errorf("TotalMissions = %d, want 4", report.Summary.TotalMissions)
	}
	if report.Summary.ReadingCount != 2 {
		t.Errorf("ReadingCount = %d, want 2", report.Summary.ReadingCount)
	}
	if report.Summary.VideoCount != 1 {
		t.Errorf("VideoCount = %d, want 1", report.Summary.VideoCount)
	}
	if report.Summary.ListeningCount != 1 {
		t.Errorf("ListeningCount = %d, want 1", report.Summary.ListeningCount)
	}
	if report.Summary.UniqueBooksRead != 1 {
		t.Errorf("UniqueBooksRead = %d, want 1", report.Summary.UniqueBooksRead)
	}
	if report.Summary.TotalWordCount != 750 {
		t.Errorf("TotalWordCount = %d, want 750", report.Summary.TotalWordCount)
	}

	today := now.Format("2006-01-02")
	stat, ok := report.DailyStats[today]
	if !ok {
		t.Fatalf("DailyStats missing entry for %s", today)
	}
	if stat.Count != 4 {
		t.Errorf("daily count = %d, want 4", stat.Count)
	}
}

func TestMonthlyReportValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	reports := newReportService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")

	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"month too low", 2026, 0},
		{"month too high", 2026, 13},
		{"year too low", 1999, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reports.Monthly(ctx, user.ID, child.ID, tt.year, tt.month)
			var vErr validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("Monthly(%d, %d) error = %v, want validation error", tt.year, tt.month, err)
			}
		})
	}
}

func TestGrowthSummary(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	reports := newReportService(t, env)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")

	loved := env.insertBook(t, "Loved Book", 1.5, 500, "animals")
	reaction := models.ReactionLove
	if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
		ChildID:      child.ID,
		BookID:       &loved,
		ActivityType: models.ActivityReading,
		Reaction:     &reaction,
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	growth, err := reports.Growth(ctx, user.ID, child.ID)
	if err != nil {
		t.Fatalf("Growth() error = %v", err)
	}
	if growth.TotalBooksRead != 1 {
		t.Errorf("TotalBooksRead = %d, want 1", growth.TotalBooksRead)
	}
	if growth.TotalMissions != 1 {
		t.Errorf("TotalMissions = %d, want 1", growth.TotalMissions)
	}
	if growth.LovedBooksCount != 1 {
		t.Errorf("LovedBooksCount = %d, want 1", growth.LovedBooksCount)
	}
	if len(growth.FavoriteThemes) != 1 || growth.FavoriteThemes[0].Code != "animals" {
		t.Errorf("FavoriteThemes = %v, want the animals theme", growth.FavoriteThemes)
	}
}
