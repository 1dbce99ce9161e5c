package dateutil

import "time"

// ISODate is the wire format for calendar dates coming from the planning backend.
const ISODate = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DayUTC returns the calendar day of the date as a UTC midnight. Dates
// that originate in different timezones (parsed ISO strings vs the
// business-timezone clock) only compare correctly after this
// normalization: two instants on the same nominal day become equal.
func DayUTC(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	daysFromMonday := weekday - 1
	return StartOfDay(date.AddDate(0, 0, -daysFromMonday))
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same calendar day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// AddDays returns the date shifted by n calendar days, keeping start of day
func AddDays(date time.Time, n int) time.Time {
	return StartOfDay(date.AddDate(0, 0, n))
}

// DaysBetween returns the number of calendar days from a to b.
// Positive when b is after a, negative when before, 0 on the same day.
// Both dates are normalized to UTC midnight first so DST transitions
// in the business timezone never skew the count.
func DaysBetween(a, b time.Time) int {
	return int(DayUTC(b).Sub(DayUTC(a)).Hours() / 24)
}

// MaxDate returns the later of two dates
func MaxDate(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

// MinDate returns the earlier of two dates
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	var t time.Time
	var err error
	for _, format := range formats {
		if t, err = time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, err
}

// TodayIn returns today's date (start of day) in the given business timezone
func TodayIn(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}

// YesterdayIn returns yesterday's date (start of day) in the given business timezone
func YesterdayIn(loc *time.Location) time.Time {
	return AddDays(TodayIn(loc), -1)
}
