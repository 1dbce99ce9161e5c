package timeline

import (
	"time"

	"github.com/username/timeline-engine/internal/calendar"
	"github.com/username/timeline-engine/pkg/dateutil"
)

// DayCell describes one column of the timeline grid.
// IsWeekend is the plain Sat/Sun calendar flag; IsWorkday is the effective
// status after production-calendar overrides are applied.
type DayCell struct {
	Date                 time.Time
	DayOfMonth           int
	DayOfWeek            string
	IsWeekend            bool
	IsToday              bool
	IsWeekStart          bool
	IsMonthStart         bool
	MonthName            string
	IsHoliday            bool
	HolidayName          string
	IsWorkday            bool
	IsTransferredWorkday bool
	IsTransferredDayOff  bool
	IsShortened          bool
}

var weekdayLabels = map[string][7]string{
	"en": {"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"},
	"ru": {"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"},
}

var monthLabels = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"ru": {"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
}

// WeekdayLabel returns the short day-of-week label for the locale,
// falling back to English for unknown locales
func WeekdayLabel(day time.Weekday, locale string) string {
	labels, ok := weekdayLabels[locale]
	if !ok {
		labels = weekdayLabels["en"]
	}
	return labels[int(day)]
}

// MonthLabel returns the month name for the locale, falling back to
// English for unknown locales
func MonthLabel(month time.Month, locale string) string {
	labels, ok := monthLabels[locale]
	if !ok {
		labels = monthLabels["en"]
	}
	return labels[int(month)-1]
}

// BuildGrid expands the range into one cell per calendar day, applying
// production-calendar overrides: a holiday or transferred day off clears
// IsWorkday even on a weekday, a transferred workday sets it even on a
// weekend. Today is matched by calendar day, not timestamp. The result
// always holds exactly rng.TotalDays cells in date order.
func BuildGrid(rng Range, events []calendar.Event, today time.Time, locale string) []DayCell {
	overrides := make(map[string][]calendar.Event, len(events))
	for _, ev := range events {
		key := ev.Date.Format(dateutil.ISODate)
		overrides[key] = append(overrides[key], ev)
	}

	cells := make([]DayCell, 0, rng.TotalDays)
	for i := 0; i < rng.TotalDays; i++ {
		date := dateutil.AddDays(rng.Start, i)
		weekend := dateutil.IsWeekend(date)

		cell := DayCell{
			Date:         date,
			DayOfMonth:   date.Day(),
			DayOfWeek:    WeekdayLabel(date.Weekday(), locale),
			IsWeekend:    weekend,
			IsToday:      dateutil.IsSameDay(date, today),
			IsWeekStart:  date.Weekday() == time.Monday,
			IsMonthStart: date.Day() == 1,
			MonthName:    MonthLabel(date.Month(), locale),
			IsWorkday:    !weekend,
		}

		for _, ev := range overrides[date.Format(dateutil.ISODate)] {
			switch ev.Type {
			case calendar.EventHoliday:
				cell.IsHoliday = true
				cell.HolidayName = ev.Name
				cell.IsWorkday = false
			case calendar.EventTransferredWorkday:
				cell.IsTransferredWorkday = true
				cell.IsWorkday = true
			case calendar.EventTransferredDayOff:
				cell.IsTransferredDayOff = true
				cell.IsWorkday = false
			case calendar.EventShortenedDay:
				cell.IsShortened = true
			}
		}

		cells = append(cells, cell)
	}

	return cells
}
