package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// ErrMissionNotFound means the referenced mission template does not exist
var ErrMissionNotFound = errors.New("mission not found")

// CompleteMissionInput carries one activity completion. At most one of
// BookID and MissionID is set; handlers resolve the client's synthetic keys
// before building it.
type CompleteMissionInput struct {
	ChildID      int64
	BookID       *int64
	MissionID    *int64
	ActivityType string
	Reaction     *string
	IsManualLog  bool
}

// MissionStats bundles a child's aggregate counters for the stats endpoint
type MissionStats struct {
	TotalBooksRead    int `json:"total_books_read"`
	TotalWordCount    int `json:"total_word_count"`
	CurrentStreak     int `json:"current_streak"`
	LongestStreak     int `json:"longest_streak"`
	MissionsThisMonth int `json:"missions_this_month"`
}

// MissionService handles activity completion and mission queries
type MissionService struct {
	db          *database.DB
	childRepo   *repository.ChildRepository
	missionRepo *repository.MissionRepository
}

// NewMissionService creates a new mission service
func NewMissionService(db *database.DB, childRepo *repository.ChildRepository, missionRepo *repository.MissionRepository) *MissionService {
	return &MissionService{db: db, childRepo: childRepo, missionRepo: missionRepo}
}

// Complete records one finished activity and recomputes the child's
// counters in the same transaction.
//
// A log carries exactly one counting identity: the book for book-linked
// work, the template for generic work. A template reference that points at
// a book-linked template collapses to that book.
func (s *MissionService) Complete(ctx context.Context, userID int64, in CompleteMissionInput) (*models.MissionLog, error) {
	if err := validation.ValidateActivityType(in.ActivityType); err != nil {
		return nil, err
	}
	if in.Reaction != nil {
		if err := validation.ValidateReaction(*in.Reaction); err != nil {
			return nil, err
		}
	}

	bookID, missionID := in.BookID, in.MissionID
	if missionID != nil {
		template, err := s.missionRepo.GetTemplateByID(ctx, *missionID)
		if err != nil {
			return nil, err
		}
		if template == nil {
			return nil, ErrMissionNotFound
		}
		if template.IsBookLinked() {
			bookID = template.BookID
			missionID = nil
		} else {
			bookID = nil
		}
	}

	if in.ActivityType == models.ActivityReading && bookID == nil {
		return nil, validation.ValidationError{Field: "book_id", Message: "reading requires a book"}
	}

	child, err := s.childRepo.GetOwnedChild(ctx, in.ChildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	log := &models.MissionLog{
		ChildID:      in.ChildID,
		UserID:       userID,
		BookID:       bookID,
		MissionID:    missionID,
		CourseID:     child.CurrentCourseID,
		ActivityType: in.ActivityType,
		Reaction:     in.Reaction,
		IsManualLog:  in.IsManualLog,
		LoggedAt:     time.Now().UTC(),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := s.missionRepo.InsertLog(ctx, tx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id

	if err := s.missionRepo.RecountChildStats(ctx, tx, in.ChildID); err != nil {
		return nil, err
	}

	dates, err := s.missionRepo.GetLogDates(ctx, tx, in.ChildID)
	if err != nil {
		return nil, err
	}
	current, longest := ComputeStreaks(dates, time.Now().UTC())
	if longest < child.LongestStreak {
		longest = child.LongestStreak
	}
	if err := s.missionRepo.UpdateStreaks(ctx, tx, in.ChildID, current, longest); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return log, nil
}

// Today returns the per-template counters of the child's current level with
// the synthetic keys the client uses for list identity
func (s *MissionService) Today(ctx context.Context, userID, childID int64) ([]models.TodayMission, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	if child.CurrentLevelID == nil {
		return nil, ErrLevelNotAssigned
	}

	templates, err := s.missionRepo.GetTemplatesByLevel(ctx, *child.CurrentLevelID)
	if err != nil {
		return nil, err
	}

	var bookIDs, missionIDs []int64
	for _, t := range templates {
		if t.IsBookLinked() {
			bookIDs = append(bookIDs, *t.BookID)
		} else {
			missionIDs = append(missionIDs, t.ID)
		}
	}
	bookCounts, err := s.missionRepo.CountLogsByBookIDs(ctx, childID, bookIDs)
	if err != nil {
		return nil, err
	}
	missionCounts, err := s.missionRepo.CountLogsByMissionIDs(ctx, childID, missionIDs)
	if err != nil {
		return nil, err
	}

	missions := make([]models.TodayMission, 0, len(templates))
	for _, t := range templates {
		count := missionCounts[t.ID]
		key := fmt.Sprintf("g-%d", t.ID)
		if t.IsBookLinked() {
			count = bookCounts[*t.BookID]
			key = fmt.Sprintf("b-%d", *t.BookID)
		}
		missions = append(missions, models.TodayMission{
			Key:          key,
			Title:        t.Title,
			ActivityType: t.ActivityType,
			BookID:       t.BookID,
			CurrentCount: count,
			TargetCount:  t.TargetCount,
			Completed:    t.TargetCount > 0 && count >= t.TargetCount,
		})
	}
	return missions, nil
}

// History returns a page of the child's activity logs, newest first
func (s *MissionService) History(ctx context.Context, userID, childID int64, limit, offset int) ([]models.MissionLog, int, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, 0, ErrChildNotFound
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.missionRepo.GetHistory(ctx, childID, limit, offset)
}

// Stats returns the child's aggregate counters plus this month's log count
func (s *MissionService) Stats(ctx context.Context, userID, childID int64) (*MissionStats, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	thisMonth, err := s.missionRepo.CountLogsSince(ctx, childID, monthStart)
	if err != nil {
		return nil, err
	}

	return &MissionStats{
		TotalBooksRead:    child.TotalBooksRead,
		TotalWordCount:    child.TotalWordCount,
		CurrentStreak:     child.CurrentStreak,
		LongestStreak:     child.LongestStreak,
		MissionsThisMonth: thisMonth,
	}, nil
}

// ComputeStreaks derives the current and longest run of consecutive log days
// from the distinct timestamps, newest first. The current run must reach
// today or yesterday; an older run only counts toward longest.
func ComputeStreaks(dates []time.Time, now time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool)
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		key := day.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	if today.Sub(days[0]) <= 24*time.Hour {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) != 24*time.Hour {
				break
			}
			current++
		}
	}
	return current, longest
}
