package timeline

import (
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// SnapStart moves a start date forward to the next working day:
// Saturday advances two days, Sunday one, weekdays pass through unchanged.
func SnapStart(date time.Time) time.Time {
	date = dateutil.StartOfDay(date)
	switch date.Weekday() {
	case time.Saturday:
		return dateutil.AddDays(date, 2)
	case time.Sunday:
		return dateutil.AddDays(date, 1)
	default:
		return date
	}
}

// SnapEnd moves an end date backward to the previous working day:
// Saturday retreats one day, Sunday two, weekdays pass through unchanged.
func SnapEnd(date time.Time) time.Time {
	date = dateutil.StartOfDay(date)
	switch date.Weekday() {
	case time.Saturday:
		return dateutil.AddDays(date, -1)
	case time.Sunday:
		return dateutil.AddDays(date, -2)
	default:
		return date
	}
}

// SnapInterval snaps both ends of an interval for display. ok is false
// when snapping inverts the interval, e.g. an assignment that lives
// entirely on a weekend.
func SnapInterval(start, end time.Time) (time.Time, time.Time, bool) {
	snappedStart := SnapStart(start)
	snappedEnd := SnapEnd(end)
	if snappedEnd.Before(snappedStart) {
		return time.Time{}, time.Time{}, false
	}
	return snappedStart, snappedEnd, true
}
