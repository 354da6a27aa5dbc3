package handlers

import (
	"testing"
)

func TestParseMissionKey(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		wantBookID    int64
		wantMissionID int64
		wantOK        bool
	}{
		{"book key", "b-42", 42, 0, true},
		{"generic key", "g-7", 0, 7, true},
		{"bare template id", "15", 0, 15, true},
		{"book key zero id", "b-0", 0, 0, false},
		{"generic key negative id", "g--3", 0, 0, false},
		{"book key not numeric", "b-abc", 0, 0, false},
		{"empty", "", 0, 0, false},
		{"not numeric", "abc", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookID, missionID, ok := parseMissionKey(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if tt.wantBookID != 0 {
				if bookID == nil || *bookID != tt.wantBookID {
					t.Errorf("bookID = %v, want %d", bookID, tt.wantBookID)
				}
				if missionID != nil {
					t.Errorf("missionID = %v, want nil", *missionID)
				}
			}
			if tt.wantMissionID != 0 {
				if missionID == nil || *missionID != tt.wantMissionID {
					t.Errorf("missionID = %v, want %d", missionID, tt.wantMissionID)
				}
				if bookID != nil {
					t.Errorf("bookID = %v, want nil", *bookID)
				}
			}
		})
	}
}
