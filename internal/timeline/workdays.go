package timeline

import (
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// CountWorkingDays counts calendar days in the inclusive interval that
// fall on Monday-Friday. It deliberately ignores the production calendar:
// average daily load stays comparable across months regardless of holiday
// placement, unlike the grid which does apply overrides. Returns 0 when
// end precedes start.
func CountWorkingDays(start, end time.Time) int {
	start = dateutil.DayUTC(start)
	end = dateutil.DayUTC(end)
	if end.Before(start) {
		return 0
	}

	count := 0
	for d := start; !d.After(end); d = dateutil.AddDays(d, 1) {
		if dateutil.IsWeekday(d) {
			count++
		}
	}
	return count
}

// AvgHoursPerDay spreads planned hours over the working days of the
// interval. A weekend-only interval has zero working days and yields 0.
func AvgHoursPerDay(plannedHours float64, start, end time.Time) float64 {
	workingDays := CountWorkingDays(start, end)
	if workingDays == 0 {
		return 0
	}
	return plannedHours / float64(workingDays)
}
