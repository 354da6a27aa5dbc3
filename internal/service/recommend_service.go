package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
)

// ErrNoRecommendation means no unread book exists inside the child's band
var ErrNoRecommendation = errors.New("no recommendable book found")

// Reasons attached to a daily pick
const (
	ReasonInterestsAndLevel = "interests and level"
	ReasonLevelOnly         = "level only"
)

// candidateWindow caps how many band candidates feed the random pick
const candidateWindow = 20

// bandWidening is how far the AR band stretches past the level's edges
const bandWidening = 0.5

// Default band applied when the child has no level assigned yet
const (
	defaultMinAR = 0.0
	defaultMaxAR = 5.0
)

// RecommendService picks the daily book for a child
type RecommendService struct {
	childRepo   *repository.ChildRepository
	bookRepo    *repository.BookRepository
	levelRepo   *repository.LevelRepository
	missionRepo *repository.MissionRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendService creates a new recommendation service. rng drives the
// pick among candidates; pass a seeded source for deterministic behavior.
func NewRecommendService(childRepo *repository.ChildRepository, bookRepo *repository.BookRepository, levelRepo *repository.LevelRepository, missionRepo *repository.MissionRepository, rng *rand.Rand) *RecommendService {
	return &RecommendService{
		childRepo:   childRepo,
		bookRepo:    bookRepo,
		levelRepo:   levelRepo,
		missionRepo: missionRepo,
		rng:         rng,
	}
}

// DailyBook picks today's book for a child owned by the given user.
//
// The pick is drawn from books inside the child's widened AR band that the
// child has never logged activity against. Books sharing a theme with the
// child's interests are preferred; when none match, any band book qualifies.
func (s *RecommendService) DailyBook(ctx context.Context, childID, userID int64) (*models.Recommendation, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	minAR, maxAR, err := s.bandFor(ctx, child)
	if err != nil {
		return nil, err
	}

	engaged, err := s.missionRepo.GetEngagedBookIDs(ctx, childID)
	if err != nil {
		return nil, err
	}

	interests, err := s.childRepo.GetInterests(ctx, childID)
	if err != nil {
		return nil, err
	}
	themeIDs := make([]int64, len(interests))
	for i, theme := range interests {
		themeIDs[i] = theme.ID
	}

	reason := ReasonInterestsAndLevel
	var candidates []models.Book
	if len(themeIDs) > 0 {
		candidates, err = s.bookRepo.FindCandidates(ctx, minAR, maxAR, themeIDs, engaged, candidateWindow)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		reason = ReasonLevelOnly
		candidates, err = s.bookRepo.FindCandidates(ctx, minAR, maxAR, nil, engaged, candidateWindow)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoRecommendation
	}

	pick := candidates[s.intn(len(candidates))]
	detail, err := s.bookRepo.GetBookByID(ctx, pick.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNoRecommendation
	}

	return &models.Recommendation{
		Book:    *detail,
		ChildID: childID,
		Reason:  reason,
	}, nil
}

// bandFor resolves the widened AR band of a child's level, or the default
// band when no level is assigned
func (s *RecommendService) bandFor(ctx context.Context, child *models.Child) (float64, float64, error) {
	minAR, maxAR := defaultMinAR, defaultMaxAR
	if child.CurrentLevelID != nil {
		level, err := s.levelRepo.GetLevelByID(ctx, *child.CurrentLevelID)
		if err != nil {
			return 0, 0, err
		}
		if level != nil {
			minAR, maxAR = level.MinAR, level.MaxAR
		}
	}

	minAR -= bandWidening
	if minAR < 0 {
		minAR = 0
	}
	maxAR += bandWidening
	return minAR, maxAR, nil
}

func (s *RecommendService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
