package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
)

// ErrLevelNotAssigned means the child has not completed onboarding yet
var ErrLevelNotAssigned = errors.New("child has no level assigned")

// ErrLevelNotFound means the requested level does not exist
var ErrLevelNotFound = errors.New("level not found")

// Mission progress states
const (
	StatusPast    = "past"
	StatusCurrent = "current"
)

// RoadmapService computes a child's progress through their level's missions
type RoadmapService struct {
	childService *ChildService
	childRepo    *repository.ChildRepository
	levelRepo    *repository.LevelRepository
	missionRepo  *repository.MissionRepository
}

// NewRoadmapService creates a new roadmap service
func NewRoadmapService(childService *ChildService, childRepo *repository.ChildRepository, levelRepo *repository.LevelRepository, missionRepo *repository.MissionRepository) *RoadmapService {
	return &RoadmapService{
		childService: childService,
		childRepo:    childRepo,
		levelRepo:    levelRepo,
		missionRepo:  missionRepo,
	}
}

// Progress aggregates a child's lifetime activity against their level's
// mission templates.
//
// Counting is per template identity: a book-linked template counts logs
// against its book, a generic one counts logs that reference the template
// itself. Each percentage clamps at 100 and the overall figure is the mean
// across templates.
func (s *RoadmapService) Progress(ctx context.Context, childID, userID int64) (*models.LevelProgress, error) {
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

	detail, err := s.childService.Detail(ctx, child)
	if err != nil {
		return nil, err
	}

	templates, err := s.missionRepo.GetTemplatesByLevel(ctx, *child.CurrentLevelID)
	if err != nil {
		return nil, err
	}

	missions, err := s.progressFor(ctx, childID, templates)
	if err != nil {
		return nil, err
	}

	overall := 0
	if len(missions) > 0 {
		sum := 0
		for _, m := range missions {
			sum += m.Percent
		}
		overall = int(math.Round(float64(sum) / float64(len(missions))))
	}

	return &models.LevelProgress{
		Child:          *detail,
		Missions:       missions,
		OverallPercent: overall,
	}, nil
}

// LevelBooks lists one level's sequenced course books for the roadmap detail
// view. The child must belong to the requesting user.
func (s *RoadmapService) LevelBooks(ctx context.Context, childID, userID, levelID int64) (*models.LevelBookList, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	level, err := s.levelRepo.GetLevelByID(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, ErrLevelNotFound
	}

	books, err := s.levelRepo.GetLevelCourseBooks(ctx, levelID)
	if err != nil {
		return nil, err
	}

	return &models.LevelBookList{
		Level: *level,
		Books: books,
	}, nil
}

// progressFor computes per-template counters with two grouped queries, one
// per counting identity
func (s *RoadmapService) progressFor(ctx context.Context, childID int64, templates []models.MissionTemplate) ([]models.MissionProgress, error) {
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

	missions := make([]models.MissionProgress, 0, len(templates))
	for _, t := range templates {
		count := missionCounts[t.ID]
		if t.IsBookLinked() {
			count = bookCounts[*t.BookID]
		}

		percent := 0
		if t.TargetCount > 0 {
			percent = int(math.Round(100 * float64(count) / float64(t.TargetCount)))
			if percent > 100 {
				percent = 100
			}
		}
		status := StatusCurrent
		if t.TargetCount > 0 && count >= t.TargetCount {
			status = StatusPast
		}

		missions = append(missions, models.MissionProgress{
			Mission:      t,
			CurrentCount: count,
			TargetCount:  t.TargetCount,
			Percent:      percent,
			Status:       status,
		})
	}
	return missions, nil
}
