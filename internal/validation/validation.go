package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jiaebaek/CurriMap/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateNickname checks a child's nickname
func ValidateNickname(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return ValidationError{Field: "nickname", Message: "nickname is required"}
	}
	if len(nickname) > 50 {
		return ValidationError{Field: "nickname", Message: "nickname must be at most 50 characters"}
	}
	return nil
}

// ValidateBirthMonths checks an age in months (0-144 covers the supported ages)
func ValidateBirthMonths(birthMonths int) error {
	if birthMonths < 0 || birthMonths > 144 {
		return ValidationError{Field: "birth_months", Message: "birth_months must be between 0 and 144"}
	}
	return nil
}

// ValidateGender checks an optional gender value
func ValidateGender(gender string) error {
	switch gender {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	}
	return ValidationError{Field: "gender", Message: "gender must be male, female, or other"}
}

// ValidateActivityType checks a mission log activity type
func ValidateActivityType(activityType string) error {
	if activityType == "" {
		return ValidationError{Field: "activity_type", Message: "activity_type is required"}
	}
	if !models.ValidActivityType(activityType) {
		return ValidationError{
			Field:   "activity_type",
			Message: "activity_type must be one of: reading, video, focused_listening, background_listening",
		}
	}
	return nil
}

// ValidateReaction checks an optional reaction value
func ValidateReaction(reaction string) error {
	if reaction == "" {
		return nil
	}
	if !models.ValidReaction(reaction) {
		return ValidationError{Field: "reaction", Message: "reaction must be one of: love, soso, hate"}
	}
	return nil
}

// ValidateThemeIDs checks an interest selection
func ValidateThemeIDs(themeIDs []int64) error {
	if len(themeIDs) == 0 {
		return ValidationError{Field: "theme_ids", Message: "at least one theme must be selected"}
	}
	for _, id := range themeIDs {
		if id <= 0 {
			return ValidationError{Field: "theme_ids", Message: "all theme_ids must be positive integers"}
		}
	}
	return nil
}
