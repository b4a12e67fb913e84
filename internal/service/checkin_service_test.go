package service

import (
	"testing"
	"time"

	"github.com/spec-kit/staffing-service/internal/domain"
)

func TestClassifyCheckin(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.May, 1, 18, 0, 0, 0, time.UTC)
	event := &domain.Event{
		StartsAt:            start,
		EndsAt:              start.Add(6 * time.Hour),
		CheckinOpensMinutes: 60,
		LateGraceMinutes:    15,
	}

	cases := []struct {
		name       string
		now        time.Time
		wantTiming domain.CheckinTiming
		wantErr    bool
	}{
		{"before the window opens", start.Add(-2 * time.Hour), "", true},
		{"at window open", start.Add(-60 * time.Minute), domain.CheckinOnTime, false},
		{"just before start", start.Add(-time.Minute), domain.CheckinOnTime, false},
		{"within the grace period", start.Add(10 * time.Minute), domain.CheckinOnTime, false},
		{"at the grace boundary", start.Add(15 * time.Minute), domain.CheckinOnTime, false},
		{"past the grace period", start.Add(16 * time.Minute), domain.CheckinLate, false},
		{"well into the event", start.Add(3 * time.Hour), domain.CheckinLate, false},
		{"after the event ends", start.Add(7 * time.Hour), "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			timing, err := ClassifyCheckin(event, tc.now)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got timing %s", timing)
				}
				return
			}
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if timing != tc.wantTiming {
				t.Fatalf("timing = %s, want %s", timing, tc.wantTiming)
			}
		})
	}
}

func TestRandomCheckinCodeShape(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomCheckinCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != checkinCodeLength {
			t.Fatalf("code %q length = %d, want %d", code, len(code), checkinCodeLength)
		}
		for _, ch := range code {
			// Ambiguous characters (0, O, 1, I, L) are excluded from the alphabet.
			found := false
			for _, allowed := range checkinCodeChars {
				if ch == allowed {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected distinct codes across draws")
	}
}
