package shopping

import (
	"fmt"
	"time"

	"planifer-miam/internal/mealplan"
)

// Range is an inclusive date-only window for a shopping list. The default
// window is seven days: [start, start+6].
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange builds the shopping window from the startDate query parameter.
// An absent parameter anchors the window at today; a malformed one is an
// error (the caller maps it to a client error, never a silent fallback).
func ParseRange(startDate string, now func() time.Time) (Range, error) {
	var start time.Time
	if startDate == "" {
		start = now()
	} else {
		parsed, err := time.Parse(mealplan.DateLayout, startDate)
		if err != nil {
			return Range{}, fmt.Errorf("invalid startDate %q: %w", startDate, err)
		}
		start = parsed
	}

	start = truncateToDay(start)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}, nil
}

// StartDate returns the inclusive lower bound in wire format.
func (r Range) StartDate() string { return r.Start.Format(mealplan.DateLayout) }

// EndDate returns the inclusive upper bound in wire format.
func (r Range) EndDate() string { return r.End.Format(mealplan.DateLayout) }

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
