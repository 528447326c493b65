package shopping

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
}

func TestParseRange(t *testing.T) {
	t.Run("ExplicitStart", func(t *testing.T) {
		rng, err := ParseRange("2026-09-07", fixedNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rng.StartDate() != "2026-09-07" {
			t.Errorf("Expected start 2026-09-07, got %s", rng.StartDate())
		}
		if rng.EndDate() != "2026-09-13" {
			t.Errorf("Expected end 2026-09-13 (start+6), got %s", rng.EndDate())
		}
	})

	t.Run("DefaultsToToday", func(t *testing.T) {
		rng, err := ParseRange("", fixedNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rng.StartDate() != "2026-09-01" {
			t.Errorf("Expected start 2026-09-01, got %s", rng.StartDate())
		}
		if rng.EndDate() != "2026-09-07" {
			t.Errorf("Expected end 2026-09-07, got %s", rng.EndDate())
		}
	})

	t.Run("MalformedIsAnError", func(t *testing.T) {
		if _, err := ParseRange("07/09/2026", fixedNow); err == nil {
			t.Fatal("Expected an error for malformed startDate, got nil")
		}
		if _, err := ParseRange("not-a-date", fixedNow); err == nil {
			t.Fatal("Expected an error for malformed startDate, got nil")
		}
	})

	t.Run("MonthRollover", func(t *testing.T) {
		rng, err := ParseRange("2026-09-28", fixedNow)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rng.EndDate() != "2026-10-04" {
			t.Errorf("Expected end 2026-10-04, got %s", rng.EndDate())
		}
	})
}
