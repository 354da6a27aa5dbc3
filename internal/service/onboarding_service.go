package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
)

var (
	ErrOptionNotFound      = errors.New("answer option not found")
	ErrNoOnboardingAnswers = errors.New("no onboarding answers recorded")
)

// Mean-score thresholds shifting placement off the age-group baseline.
// Options score 1 (easy for the child) to 3 (hard), so a mean above
// shiftUpAt means the child reads above the baseline and below
// shiftDownAt below it.
const (
	shiftUpAt   = 2.5
	shiftDownAt = 1.5
)

// OnboardingService runs the placement survey and derives the child's
// starting level from it
type OnboardingService struct {
	childRepo      *repository.ChildRepository
	levelRepo      *repository.LevelRepository
	onboardingRepo *repository.OnboardingRepository
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(childRepo *repository.ChildRepository, levelRepo *repository.LevelRepository, onboardingRepo *repository.OnboardingRepository) *OnboardingService {
	return &OnboardingService{
		childRepo:      childRepo,
		levelRepo:      levelRepo,
		onboardingRepo: onboardingRepo,
	}
}

// Questions retrieves the survey questions for a child's age group
func (s *OnboardingService) Questions(ctx context.Context, childID, userID int64) ([]models.OnboardingQuestion, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return s.onboardingRepo.GetQuestionsByAgeGroup(ctx, models.AgeGroupFor(child.BirthMonths))
}

// Answer records a child's answer to one survey question, replacing any
// previous answer
func (s *OnboardingService) Answer(ctx context.Context, childID, userID, optionID int64) error {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return ErrChildNotFound
	}

	option, err := s.onboardingRepo.GetOptionByID(ctx, optionID)
	if err != nil {
		return err
	}
	if option == nil {
		return ErrOptionNotFound
	}
	return s.onboardingRepo.SaveResponse(ctx, childID, option.QuestionID, option.ID)
}

// Complete derives the child's starting level from the recorded answers and
// assigns it together with the age group's course.
//
// The age group fixes a baseline tier; the mean answer score moves placement
// one tier up or down when it crosses a threshold, clamped to the level list.
func (s *OnboardingService) Complete(ctx context.Context, childID, userID int64) (*models.ChildDetail, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	scores, err := s.onboardingRepo.GetResponseScores(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrNoOnboardingAnswers
	}

	levels, err := s.levelRepo.GetAllLevels(ctx)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, errors.New("no levels configured")
	}

	tier := baselineTier(models.AgeGroupFor(child.BirthMonths))
	sum := 0
	for _, score := range scores {
		sum += score
	}
	mean := float64(sum) / float64(len(scores))
	switch {
	case mean >= shiftUpAt:
		tier++
	case mean < shiftDownAt:
		tier--
	}
	if tier < 0 {
		tier = 0
	}
	if tier >= len(levels) {
		tier = len(levels) - 1
	}

	level := levels[tier]
	courseID := child.CurrentCourseID
	if courseID == nil {
		course, err := s.levelRepo.GetCourseByAgeGroup(ctx, models.AgeGroupFor(child.BirthMonths))
		if err != nil {
			return nil, err
		}
		if course != nil {
			courseID = &course.ID
		}
	}

	if err := s.childRepo.AssignLevelAndCourse(ctx, childID, &level.ID, courseID); err != nil {
		return nil, err
	}

	child.CurrentLevelID = &level.ID
	child.CurrentCourseID = courseID
	detail := &models.ChildDetail{Child: *child, CurrentLevel: &level, Interests: []models.Theme{}}
	if courseID != nil {
		course, err := s.levelRepo.GetCourseByID(ctx, *courseID)
		if err != nil {
			return nil, err
		}
		detail.CurrentCourse = course
	}
	interests, err := s.childRepo.GetInterests(ctx, childID)
	if err != nil {
		return nil, err
	}
	if interests != nil {
		detail.Interests = interests
	}
	return detail, nil
}

// baselineTier maps an age group onto its starting index in the ordered
// level list
func baselineTier(ageGroup string) int {
	switch ageGroup {
	case models.AgeGroupInfant:
		return 0
	case models.AgeGroupPreschool:
		return 1
	case models.AgeGroupLowerElem:
		return 2
	default:
		return 3
	}
}
