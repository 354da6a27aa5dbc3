package service

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStreaks(t *testing.T) {
	now := day("2026-03-10")

	tests := []struct {
		name        string
		dates       []time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "no activity",
			dates:       nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "single day today",
			dates:       []time.Time{day("2026-03-10")},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "single day yesterday",
			dates:       []time.Time{day("2026-03-09")},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "single day two days ago",
			dates:       []time.Time{day("2026-03-08")},
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name: "three day run ending today",
			dates: []time.Time{
				day("2026-03-10"), day("2026-03-09"), day("2026-03-08"),
			},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "run ending yesterday still counts",
			dates: []time.Time{
				day("2026-03-09"), day("2026-03-08"),
			},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "broken streak keeps longest",
			dates: []time.Time{
				day("2026-03-10"),
				day("2026-03-05"), day("2026-03-04"), day("2026-03-03"), day("2026-03-02"),
			},
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name: "old run only",
			dates: []time.Time{
				day("2026-02-20"), day("2026-02-19"), day("2026-02-18"),
			},
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name: "multiple logs same day count once",
			dates: []time.Time{
				day("2026-03-10").Add(20 * time.Hour),
				day("2026-03-10").Add(8 * time.Hour),
				day("2026-03-09").Add(12 * time.Hour),
			},
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, longest := ComputeStreaks(tt.dates, now)
			if current != tt.wantCurrent {
				t.Errorf("current = %d, want %d", current, tt.wantCurrent)
			}
			if longest != tt.wantLongest {
				t.Errorf("longest = %d, want %d", longest, tt.wantLongest)
			}
		})
	}
}
