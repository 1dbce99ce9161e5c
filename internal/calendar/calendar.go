package calendar

import "time"

// EventType classifies a production-calendar override for a single date
type EventType int

const (
	// EventHoliday marks a non-working holiday, on any weekday
	EventHoliday EventType = iota + 1
	// EventTransferredWorkday marks a weekend that works as a weekday
	EventTransferredWorkday
	// EventTransferredDayOff marks a weekday that rests instead of a
	// transferred weekend
	EventTransferredDayOff
	// EventShortenedDay marks a pre-holiday working day with reduced hours.
	// It does not change workday status, only annotates it.
	EventShortenedDay
)

// String returns the config/file token for the event type
func (t EventType) String() string {
	switch t {
	case EventHoliday:
		return "holiday"
	case EventTransferredWorkday:
		return "transferred_workday"
	case EventTransferredDayOff:
		return "transferred_dayoff"
	case EventShortenedDay:
		return "shortened_day"
	default:
		return "unknown"
	}
}

// Event represents a single production-calendar override
type Event struct {
	Date time.Time
	Type EventType
	Name string
}

// Calendar supplies production-calendar overrides for the timeline grid
type Calendar interface {
	// Events returns overrides for dates in [from, to], sorted by date
	Events(from, to time.Time) ([]Event, error)

	// IsWorkday checks if the given date is a working day, taking
	// weekends and overrides into account
	IsWorkday(date time.Time) (bool, error)
}
