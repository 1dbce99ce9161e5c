// Package series interpolates sparse (date, value) checkpoints such as
// readiness percentages or budget spending into per-day values for curve
// drawing. Actual curves are step functions (a report stays true until
// the next one), planned trajectories are straight lines.
package series

import (
	"sort"
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// Point is a single checkpoint of a sparse time series
type Point struct {
	Date  time.Time
	Value float64
}

// Mode selects the interpolation style
type Mode int

const (
	// StepMode holds the last known value until the next checkpoint
	StepMode Mode = iota
	// LinearMode draws straight segments between checkpoints
	LinearMode
)

// Sorted returns a date-ascending copy of the series. Duplicate dates are
// kept; the later entry wins during lookup.
func Sorted(points []Point) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// StepAt returns the last known value at or before the date. The series
// must be sorted ascending. Nil before the first checkpoint and past the
// reporting horizon (today, or the last checkpoint if that is later):
// a step curve never extrapolates beyond available data.
func StepAt(points []Point, date, today time.Time) *float64 {
	if len(points) == 0 {
		return nil
	}

	date = dateutil.DayUTC(date)
	if date.Before(dateutil.DayUTC(points[0].Date)) {
		return nil
	}

	horizon := dateutil.MaxDate(dateutil.DayUTC(today), dateutil.DayUTC(points[len(points)-1].Date))
	if date.After(horizon) {
		return nil
	}

	var value *float64
	for i := range points {
		if dateutil.DayUTC(points[i].Date).After(date) {
			break
		}
		v := points[i].Value
		value = &v
	}
	return value
}

// LinearAt linearly interpolates the series at the date. The series must
// be sorted ascending. Dates before the first checkpoint clamp to the
// first value, dates after the last clamp to the last. Nil for an empty
// series.
func LinearAt(points []Point, date time.Time) *float64 {
	if len(points) == 0 {
		return nil
	}

	date = dateutil.DayUTC(date)

	first := points[0]
	if !date.After(dateutil.DayUTC(first.Date)) {
		v := first.Value
		return &v
	}

	last := points[len(points)-1]
	if !date.Before(dateutil.DayUTC(last.Date)) {
		v := last.Value
		return &v
	}

	for i := 1; i < len(points); i++ {
		p0 := points[i-1]
		p1 := points[i]
		d0 := dateutil.DayUTC(p0.Date)
		d1 := dateutil.DayUTC(p1.Date)

		if date.Before(d0) || date.After(d1) {
			continue
		}

		span := dateutil.DaysBetween(d0, d1)
		if span == 0 {
			v := p0.Value
			return &v
		}

		offset := dateutil.DaysBetween(d0, date)
		v := p0.Value + (p1.Value-p0.Value)*float64(offset)/float64(span)
		return &v
	}

	// Unreachable for a sorted series; keep the sentinel shape anyway.
	return nil
}

// PlannedLine is the planned-readiness trajectory of a stage: a straight
// line from 0% at the start date to 100% at the end date.
func PlannedLine(start, end time.Time) []Point {
	return []Point{
		{Date: dateutil.DayUTC(start), Value: 0},
		{Date: dateutil.DayUTC(end), Value: 100},
	}
}

// DeltaToday is the day-over-day change shown on "today" badges. It uses
// exact checkpoints only: nil unless both today and yesterday have a data
// point. With duplicate dates the last entry wins.
func DeltaToday(points []Point, today time.Time) *float64 {
	today = dateutil.DayUTC(today)
	yesterday := dateutil.AddDays(today, -1)

	var todayValue, yesterdayValue *float64
	for i := range points {
		d := dateutil.DayUTC(points[i].Date)
		v := points[i].Value
		switch {
		case d.Equal(today):
			value := v
			todayValue = &value
		case d.Equal(yesterday):
			value := v
			yesterdayValue = &value
		}
	}

	if todayValue == nil || yesterdayValue == nil {
		return nil
	}
	delta := *todayValue - *yesterdayValue
	return &delta
}

// FillRange samples the series once per day over the inclusive interval,
// producing one entry per day cell for curve drawing. Days without a
// value are nil. The series must be sorted ascending.
func FillRange(points []Point, from, to time.Time, mode Mode, today time.Time) []*float64 {
	from = dateutil.DayUTC(from)
	to = dateutil.DayUTC(to)
	if to.Before(from) {
		return nil
	}

	values := make([]*float64, 0, dateutil.DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = dateutil.AddDays(d, 1) {
		switch mode {
		case LinearMode:
			values = append(values, LinearAt(points, d))
		default:
			values = append(values, StepAt(points, d, today))
		}
	}
	return values
}
