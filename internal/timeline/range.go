// Package timeline converts calendar date ranges into day-grid geometry:
// a fixed visible window, one cell per day, bar offsets for dated entities
// and point offsets for milestones. Every function here is pure; callers
// own clocks, calendars and rendering.
package timeline

import (
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// Range is the visible timeline window. Start and End are inclusive UTC
// midnights of nominal calendar days, TotalDays = DaysBetween(Start, End) + 1.
type Range struct {
	Start     time.Time
	End       time.Time
	TotalDays int
}

// NewRange builds the visible window anchored on the given today:
// Start = today - daysBefore, End = today + daysAfter - 1, so the window
// holds exactly daysBefore + daysAfter cells. Today may carry any
// timezone (the business-timezone clock); only its calendar day is kept,
// so window bounds always compare cleanly against parsed ISO dates.
func NewRange(today time.Time, daysBefore, daysAfter int) Range {
	if daysBefore < 0 {
		daysBefore = 0
	}
	if daysAfter < 0 {
		daysAfter = 0
	}
	if daysBefore+daysAfter == 0 {
		daysAfter = 1 // keep the window at least one day wide
	}

	today = dateutil.DayUTC(today)
	start := dateutil.AddDays(today, -daysBefore)
	end := dateutil.AddDays(today, daysAfter-1)

	return Range{
		Start:     start,
		End:       end,
		TotalDays: daysBefore + daysAfter,
	}
}

// Contains reports whether the date's calendar day falls inside the window
func (r Range) Contains(date time.Time) bool {
	date = dateutil.DayUTC(date)
	return !date.Before(r.Start) && !date.After(r.End)
}

// DayIndex returns the zero-based cell index of the date, or -1 when the
// date is outside the window
func (r Range) DayIndex(date time.Time) int {
	if !r.Contains(date) {
		return -1
	}
	return dateutil.DaysBetween(r.Start, date)
}
