package service

import (
	"testing"

	"github.com/jiaebaek/CurriMap/internal/models"
)

func TestBaselineTier(t *testing.T) {
	tests := []struct {
		name     string
		ageGroup string
		expected int
	}{
		{"infant", models.AgeGroupInfant, 0},
		{"preschool", models.AgeGroupPreschool, 1},
		{"lower elementary", models.AgeGroupLowerElem, 2},
		{"upper elementary", models.AgeGroupUpperElem, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := baselineTier(tt.ageGroup); got != tt.expected {
				t.Errorf("baselineTier(%q) = %d, want %d", tt.ageGroup, got, tt.expected)
			}
		})
	}
}
