package models

import "time"

// Activity types a mission log can record
const (
	ActivityReading             = "reading"
	ActivityVideo               = "video"
	ActivityFocusedListening    = "focused_listening"
	ActivityBackgroundListening = "background_listening"
)

// Reactions a child can attach to a completed activity
const (
	ReactionLove = "love"
	ReactionSoso = "soso"
	ReactionHate = "hate"
)

// ValidActivityType reports whether s is one of the enumerated activity types
func ValidActivityType(s string) bool {
	switch s {
	case ActivityReading, ActivityVideo, ActivityFocusedListening, ActivityBackgroundListening:
		return true
	}
	return false
}

// ValidReaction reports whether s is one of the enumerated reactions
func ValidReaction(s string) bool {
	switch s {
	case ReactionLove, ReactionSoso, ReactionHate:
		return true
	}
	return false
}

// MissionTemplate is a recurring activity requirement tied to a level.
// Fixed reference data; never mutated by child activity.
type MissionTemplate struct {
	ID            int64  `json:"id"`
	LevelID       int64  `json:"level_id"`
	SequenceOrder int    `json:"sequence_order"`
	ActivityType  string `json:"activity_type"`
	BookID        *int64 `json:"book_id,omitempty"`
	TargetCount   int    `json:"target_count"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
}

// IsBookLinked reports whether the template targets a specific book
func (t *MissionTemplate) IsBookLinked() bool {
	return t.BookID != nil
}

// MissionLog is one immutable record of a completed activity. Append-only.
type MissionLog struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	UserID       int64     `json:"user_id"`
	BookID       *int64    `json:"book_id,omitempty"`
	MissionID    *int64    `json:"mission_id,omitempty"`
	CourseID     *int64    `json:"course_id,omitempty"`
	ActivityType string    `json:"activity_type"`
	Reaction     *string   `json:"reaction,omitempty"`
	IsManualLog  bool      `json:"is_manual_log"`
	LoggedAt     time.Time `json:"logged_at"`
	Book         *Book     `json:"book,omitempty"`
}

// MissionProgress is the computed progress of one template for a child
type MissionProgress struct {
	Mission      MissionTemplate `json:"mission"`
	CurrentCount int             `json:"current_count"`
	TargetCount  int             `json:"target_count"`
	Percent      int             `json:"progress_percent"`
	Status       string          `json:"status"` // "past" when complete, else "current"
}

// LevelProgress aggregates a child's progress across a level's templates
type LevelProgress struct {
	Child          ChildDetail       `json:"child"`
	Missions       []MissionProgress `json:"missions"`
	OverallPercent int               `json:"overall_progress"`
}

// TodayMission is a per-template counter with the synthetic key the client
// uses for UI list identity ("b-<bookID>" or "g-<missionID>")
type TodayMission struct {
	Key          string `json:"id"`
	Title        string `json:"title"`
	ActivityType string `json:"activity_type"`
	BookID       *int64 `json:"book_id,omitempty"`
	CurrentCount int    `json:"current_count"`
	TargetCount  int    `json:"target_count"`
	Completed    bool   `json:"completed"`
}

// Recommendation is the daily book pick for a child
type Recommendation struct {
	Book    BookDetail `json:"book"`
	ChildID int64      `json:"child_id"`
	Reason  string     `json:"recommendation_reason"`
}
