package models

import "time"

// Gender values accepted for a child profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Age group codes derived from birth_months
const (
	AgeGroupInfant    = "infant"     // 0-3 years
	AgeGroupPreschool = "preschool"  // 4-6 years
	AgeGroupLowerElem = "lower_elem" // grades 1-3
	AgeGroupUpperElem = "upper_elem" // grades 4-6
)

// AgeGroupFor maps an age in months onto its age group code
func AgeGroupFor(birthMonths int) string {
	switch {
	case birthMonths < 48:
		return AgeGroupInfant
	case birthMonths < 84:
		return AgeGroupPreschool
	case birthMonths < 120:
		return AgeGroupLowerElem
	default:
		return AgeGroupUpperElem
	}
}

// Child represents a child profile
type Child struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Nickname        string    `json:"nickname"`
	BirthMonths     int       `json:"birth_months"`
	Gender          *string   `json:"gender,omitempty"`
	CurrentLevelID  *int64    `json:"current_level_id,omitempty"`
	CurrentCourseID *int64    `json:"current_course_id,omitempty"`
	TotalBooksRead  int       `json:"total_books_read"`
	TotalWordCount  int       `json:"total_word_count"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ChildDetail combines a child with its resolved level, course and interests
type ChildDetail struct {
	Child
	CurrentLevel  *Level  `json:"current_level,omitempty"`
	CurrentCourse *Course `json:"current_course,omitempty"`
	Interests     []Theme `json:"interests"`
}
