package models

import (
	"testing"
	"time"
)

func TestAgeGroupFor(t *testing.T) {
	tests := []struct {
		name        string
		birthMonths int
		expected    string
	}{
		{"newborn", 0, AgeGroupInfant},
		{"three years", 36, AgeGroupInfant},
		{"just under four", 47, AgeGroupInfant},
		{"four years", 48, AgeGroupPreschool},
		{"six years", 72, AgeGroupPreschool},
		{"seven years", 84, AgeGroupLowerElem},
		{"nine years", 108, AgeGroupLowerElem},
		{"ten years", 120, AgeGroupUpperElem},
		{"twelve years", 144, AgeGroupUpperElem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeGroupFor(tt.birthMonths); got != tt.expected {
				t.Errorf("AgeGroupFor(%d) = %v, want %v", tt.birthMonths, got, tt.expected)
			}
		})
	}
}

func TestValidActivityType(t *testing.T) {
	valid := []string{ActivityReading, ActivityVideo, ActivityFocusedListening, ActivityBackgroundListening}
	for _, s := range valid {
		if !ValidActivityType(s) {
			t.Errorf("ValidActivityType(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "listening", "READING", "nap"} {
		if ValidActivityType(s) {
			t.Errorf("ValidActivityType(%q) = true, want false", s)
		}
	}
}

func TestValidReaction(t *testing.T) {
	for _, s := range []string{ReactionLove, ReactionSoso, ReactionHate} {
		if !ValidReaction(s) {
			t.Errorf("ValidReaction(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "meh", "LOVE"} {
		if ValidReaction(s) {
			t.Errorf("ValidReaction(%q) = true, want false", s)
		}
	}
}

func TestMissionTemplateIsBookLinked(t *testing.T) {
	bookID := int64(7)

	linked := MissionTemplate{BookID: &bookID}
	if !linked.IsBookLinked() {
		t.Error("template with book id should be book linked")
	}

	generic := MissionTemplate{}
	if generic.IsBookLinked() {
		t.Error("template without book id should not be book linked")
	}
}

func TestSessionIsExpired(t *testing.T) {
	expired := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !expired.IsExpired() {
		t.Error("session past its expiry should be expired")
	}

	active := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if active.IsExpired() {
		t.Error("session before its expiry should not be expired")
	}
}
