package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// ErrChildNotFound means the child does not exist or belongs to another user
var ErrChildNotFound = errors.New("child not found")

// ChildService handles child profile business logic
type ChildService struct {
	childRepo *repository.ChildRepository
	levelRepo *repository.LevelRepository
}

// NewChildService creates a new child service
func NewChildService(childRepo *repository.ChildRepository, levelRepo *repository.LevelRepository) *ChildService {
	return &ChildService{childRepo: childRepo, levelRepo: levelRepo}
}

// CreateChild creates a child profile under the given user. The curriculum
// course for the child's age group is attached immediately; the level waits
// for the onboarding survey.
func (s *ChildService) CreateChild(ctx context.Context, userID int64, nickname string, birthMonths int, gender *string, themeIDs []int64) (*models.ChildDetail, error) {
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, err
	}
	if err := validation.ValidateBirthMonths(birthMonths); err != nil {
		return nil, err
	}
	if gender != nil {
		if err := validation.ValidateGender(*gender); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateThemeIDs(themeIDs); err != nil {
		return nil, err
	}

	child, err := s.childRepo.CreateChild(ctx, userID, nickname, birthMonths, gender)
	if err != nil {
		return nil, err
	}

	if len(themeIDs) > 0 {
		if err := s.childRepo.ReplaceInterests(ctx, child.ID, themeIDs); err != nil {
			return nil, err
		}
	}

	course, err := s.levelRepo.GetCourseByAgeGroup(ctx, models.AgeGroupFor(birthMonths))
	if err != nil {
		return nil, err
	}
	if course != nil {
		if err := s.childRepo.AssignLevelAndCourse(ctx, child.ID, child.CurrentLevelID, &course.ID); err != nil {
			return nil, err
		}
		child.CurrentCourseID = &course.ID
	}

	return s.Detail(ctx, child)
}

// GetChild retrieves a child owned by the given user
func (s *ChildService) GetChild(ctx context.Context, childID, userID int64) (*models.ChildDetail, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return s.Detail(ctx, child)
}

// GetChildren retrieves all of a user's children
func (s *ChildService) GetChildren(ctx context.Context, userID int64) ([]models.ChildDetail, error) {
	children, err := s.childRepo.GetUserChildren(ctx, userID)
	if err != nil {
		return nil, err
	}
	details := make([]models.ChildDetail, 0, len(children))
	for i := range children {
		detail, err := s.Detail(ctx, &children[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// UpdateChild updates a child profile owned by the given user
func (s *ChildService) UpdateChild(ctx context.Context, childID, userID int64, nickname string, birthMonths int, gender *string) (*models.ChildDetail, error) {
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, err
	}
	if err := validation.ValidateBirthMonths(birthMonths); err != nil {
		return nil, err
	}
	if gender != nil {
		if err := validation.ValidateGender(*gender); err != nil {
			return nil, err
		}
	}

	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	if err := s.childRepo.UpdateChild(ctx, childID, nickname, birthMonths, gender); err != nil {
		return nil, err
	}
	return s.GetChild(ctx, childID, userID)
}

// SetInterests replaces a child's interest themes
func (s *ChildService) SetInterests(ctx context.Context, childID, userID int64, themeIDs []int64) (*models.ChildDetail, error) {
	if err := validation.ValidateThemeIDs(themeIDs); err != nil {
		return nil, err
	}

	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	if err := s.childRepo.ReplaceInterests(ctx, childID, themeIDs); err != nil {
		return nil, err
	}
	return s.GetChild(ctx, childID, userID)
}

// Detail resolves a child's level, course and interests
func (s *ChildService) Detail(ctx context.Context, child *models.Child) (*models.ChildDetail, error) {
	detail := &models.ChildDetail{Child: *child, Interests: []models.Theme{}}

	if child.CurrentLevelID != nil {
		level, err := s.levelRepo.GetLevelByID(ctx, *child.CurrentLevelID)
		if err != nil {
			return nil, err
		}
		detail.CurrentLevel = level
	}
	if child.CurrentCourseID != nil {
		course, err := s.levelRepo.GetCourseByID(ctx, *child.CurrentCourseID)
		if err != nil {
			return nil, err
		}
		detail.CurrentCourse = course
	}

	interests, err := s.childRepo.GetInterests(ctx, child.ID)
	if err != nil {
		return nil, err
	}
	if interests != nil {
		detail.Interests = interests
	}
	return detail, nil
}
