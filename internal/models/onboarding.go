package models

import "time"

// OnboardingQuestion is an age-banded survey question shown during onboarding
type OnboardingQuestion struct {
	ID            int64            `json:"id"`
	AgeGroup      string           `json:"age_group"`
	QuestionOrder int              `json:"question_order"`
	QuestionText  string           `json:"question_text"`
	Options       []QuestionOption `json:"options"`
}

// QuestionOption is one selectable answer carrying a difficulty score (1-3)
type QuestionOption struct {
	ID          int64  `json:"id"`
	QuestionID  int64  `json:"question_id"`
	OptionOrder int    `json:"option_order"`
	OptionText  string `json:"option_text"`
	Score       int    `json:"score"`
}

// OnboardingResponse is a child's answer to one question; upserted per
// child+question so re-answering replaces the previous choice
type OnboardingResponse struct {
	ChildID     int64     `json:"child_id"`
	QuestionID  int64     `json:"question_id"`
	OptionID    int64     `json:"option_id"`
	RespondedAt time.Time `json:"responded_at"`
}
