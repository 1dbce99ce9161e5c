package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

const calendarYAML = `events:
  - date: 2025-01-01
    type: holiday
    name: Новогодние каникулы
  - date: 2025-11-01
    type: transferred_workday
  - date: 2025-11-03
    type: transferred_dayoff
  - date: 2025-12-31
    type: shortened_day
  - date: bad-date
    type: holiday
  - date: 2025-05-01
    type: bogus_type
`

func writeCalendarFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write calendar file: %v", err)
	}
	return path
}

func TestFileCalendar_Load(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar(writeCalendarFile(t, calendarYAML), logger)

	if err := fc.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Bad date and unknown type are skipped, four valid events remain
	events, err := fc.Events(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}

	if events[0].Type != EventHoliday || events[0].Name != "Новогодние каникулы" {
		t.Errorf("first event = %+v", events[0])
	}
}

func TestFileCalendar_IsWorkday(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar(writeCalendarFile(t, calendarYAML), logger)
	if err := fc.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"holiday on weekday", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"transferred workday on Saturday", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), true},
		{"transferred day off on Monday", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), false},
		{"plain weekday", time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), true},
		{"plain Sunday", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), false},
		{"shortened day still works", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fc.IsWorkday(tt.date)
			if err != nil {
				t.Fatalf("IsWorkday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsWorkday(%v) = %v, want %v",
					tt.date.Format("2006-01-02 Mon"), got, tt.want)
			}
		})
	}
}

func TestFileCalendar_NotLoaded(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	fc := NewFileCalendar("missing.yaml", logger)

	if _, err := fc.Events(time.Now(), time.Now()); err == nil {
		t.Error("Events() before Load() must fail")
	}
	if _, err := fc.IsWorkday(time.Now()); err == nil {
		t.Error("IsWorkday() before Load() must fail")
	}
}

func TestStaticCalendar_BusinessTimezoneBounds(t *testing.T) {
	// Events carry UTC-midnight dates; range bounds may arrive in the
	// business timezone. Both edge days must survive the filter.
	sc := NewStaticCalendar([]Event{
		{Date: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), Type: EventTransferredWorkday},
		{Date: time.Date(2025, 11, 19, 0, 0, 0, 0, time.UTC), Type: EventHoliday},
	})

	zones := []*time.Location{
		time.FixedZone("MSK", 3*60*60),
		time.FixedZone("UTC-5", -5*60*60),
	}
	for _, zone := range zones {
		events, err := sc.Events(
			time.Date(2025, 11, 10, 0, 0, 0, 0, zone),
			time.Date(2025, 11, 19, 0, 0, 0, 0, zone))
		if err != nil {
			t.Fatalf("Events() error = %v", err)
		}
		if len(events) != 2 {
			t.Errorf("zone %v: events = %d, want 2", zone, len(events))
		}
	}
}

func TestStaticCalendar(t *testing.T) {
	events := []Event{
		{Date: time.Date(2025, 11, 4, 13, 30, 0, 0, time.UTC), Type: EventHoliday, Name: "Праздник"},
		{Date: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), Type: EventTransferredWorkday},
	}
	sc := NewStaticCalendar(events)

	// Events are normalized to start of day and sorted
	got, err := sc.Events(
		time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if !got[0].Date.Before(got[1].Date) {
		t.Error("events must be sorted by date")
	}
	if got[1].Date.Hour() != 0 {
		t.Error("event dates must be normalized to start of day")
	}

	// Range filter
	got, err = sc.Events(
		time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("filtered events = %d, want 1", len(got))
	}

	workday, err := sc.IsWorkday(time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("IsWorkday() error = %v", err)
	}
	if workday {
		t.Error("holiday Tuesday must not be a workday")
	}
}
