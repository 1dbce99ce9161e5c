package calendar

import (
	"sort"
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
)

// StaticCalendar implements Calendar over an in-memory event list.
// Used for embedded defaults and as the zero-dependency option in tests.
type StaticCalendar struct {
	events []Event
}

// NewStaticCalendar creates a new StaticCalendar from the given events
func NewStaticCalendar(events []Event) *StaticCalendar {
	normalized := make([]Event, len(events))
	copy(normalized, events)
	for i := range normalized {
		normalized[i].Date = dateutil.DayUTC(normalized[i].Date)
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Date.Before(normalized[j].Date)
	})
	return &StaticCalendar{events: normalized}
}

// Events returns overrides for calendar days in [from, to], sorted by
// date. Bounds may carry any timezone; only their nominal days matter.
func (sc *StaticCalendar) Events(from, to time.Time) ([]Event, error) {
	from = dateutil.DayUTC(from)
	to = dateutil.DayUTC(to)

	var result []Event
	for _, ev := range sc.events {
		if ev.Date.Before(from) || ev.Date.After(to) {
			continue
		}
		result = append(result, ev)
	}
	return result, nil
}

// IsWorkday checks if the given date is a working day
func (sc *StaticCalendar) IsWorkday(date time.Time) (bool, error) {
	date = dateutil.StartOfDay(date)

	workday := dateutil.IsWeekday(date)
	for _, ev := range sc.events {
		if !dateutil.IsSameDay(ev.Date, date) {
			continue
		}
		switch ev.Type {
		case EventHoliday, EventTransferredDayOff:
			workday = false
		case EventTransferredWorkday:
			workday = true
		}
	}
	return workday, nil
}
