package timeline

import (
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// UnitMode selects the coordinate space bars are reported in
type UnitMode int

const (
	// UnitPercent reports offsets as a percentage of the window width (0-100)
	UnitPercent UnitMode = iota
	// UnitPixels reports offsets as absolute pixels, CellWidth per day
	UnitPixels
)

// Unit carries the coordinate mode and, for pixel mode, the width of one
// day cell. The two modes are equivalent up to this scale factor.
type Unit struct {
	Mode      UnitMode
	CellWidth float64
}

// Percent returns the percentage-of-window unit
func Percent() Unit {
	return Unit{Mode: UnitPercent}
}

// Pixels returns the absolute-pixel unit with the given day-cell width
func Pixels(cellWidth float64) Unit {
	return Unit{Mode: UnitPixels, CellWidth: cellWidth}
}

// scale converts a day count into the unit's coordinate space
func (u Unit) scale(days float64, totalDays int) float64 {
	if u.Mode == UnitPixels {
		return days * u.CellWidth
	}
	return days / float64(totalDays) * 100
}

// BarPosition is a horizontal bar on the grid: left offset and width,
// both in the unit the caller asked for. Width is always positive;
// an absent bar is a nil *BarPosition, never a zero-width one.
type BarPosition struct {
	Left  float64
	Width float64
}

// BarFor maps an entity's ISO date pair onto the window. Returns nil when
// either date is missing, unparseable, or the interval lies entirely
// outside the window. The visible part is clipped to the window edges.
func BarFor(startDate, endDate *string, rng Range, unit Unit) *BarPosition {
	start, end, ok := parseInterval(startDate, endDate)
	if !ok {
		return nil
	}
	return BarForDates(start, end, rng, unit)
}

// BarForDates is BarFor over already-parsed dates. Only the calendar day
// of each date matters; timezones are discarded before comparison.
func BarForDates(start, end time.Time, rng Range, unit Unit) *BarPosition {
	start = dateutil.DayUTC(start)
	end = dateutil.DayUTC(end)

	if end.Before(start) {
		return nil
	}
	if end.Before(rng.Start) || start.After(rng.End) {
		return nil
	}

	visibleStart := dateutil.MaxDate(start, rng.Start)
	visibleEnd := dateutil.MinDate(end, rng.End)

	dayOffset := dateutil.DaysBetween(rng.Start, visibleStart)
	duration := dateutil.DaysBetween(visibleStart, visibleEnd) + 1

	return &BarPosition{
		Left:  unit.scale(float64(dayOffset), rng.TotalDays),
		Width: unit.scale(float64(duration), rng.TotalDays),
	}
}

// BarForWorkdays positions a bar whose duration excludes weekends: the
// start is snapped forward and the end backward to the nearest weekday
// before clipping. A weekend-only interval collapses and yields nil.
func BarForWorkdays(startDate, endDate *string, rng Range, unit Unit) *BarPosition {
	start, end, ok := parseInterval(startDate, endDate)
	if !ok {
		return nil
	}

	snappedStart, snappedEnd, ok := SnapInterval(start, end)
	if !ok {
		return nil
	}
	return BarForDates(snappedStart, snappedEnd, rng, unit)
}

// MilestoneFor maps a single ISO date to the horizontal center of its day
// cell. Returns nil for missing/unparseable dates and dates outside the
// window.
func MilestoneFor(date *string, rng Range, unit Unit) *float64 {
	if date == nil || *date == "" {
		return nil
	}
	parsed, err := dateutil.ParseDate(*date)
	if err != nil {
		return nil
	}
	return MilestoneForDate(parsed, rng, unit)
}

// MilestoneForDate is MilestoneFor over an already-parsed date
func MilestoneForDate(date time.Time, rng Range, unit Unit) *float64 {
	idx := rng.DayIndex(date)
	if idx < 0 {
		return nil
	}

	center := unit.scale(float64(idx)+0.5, rng.TotalDays)
	return &center
}

func parseInterval(startDate, endDate *string) (time.Time, time.Time, bool) {
	if startDate == nil || *startDate == "" || endDate == nil || *endDate == "" {
		return time.Time{}, time.Time{}, false
	}

	start, err := dateutil.ParseDate(*startDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := dateutil.ParseDate(*endDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
