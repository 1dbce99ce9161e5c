package calendar

import (
	"fmt"
	"os"
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileCalendar implements Calendar using a local YAML file
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	loaded   *StaticCalendar
}

// fileEvent represents one entry of the YAML events file
// Example:
//
//	events:
//	  - date: 2025-01-01
//	    type: holiday
//	    name: Новогодние каникулы
//	  - date: 2025-11-01
//	    type: transferred_workday
type fileEvent struct {
	Date string `yaml:"date"`
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
}

type fileCalendarDoc struct {
	Events []fileEvent `yaml:"events"`
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
	}
}

// Load loads calendar events from the YAML file
func (fc *FileCalendar) Load() error {
	data, err := os.ReadFile(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to read calendar file: %w", err)
	}

	var doc fileCalendarDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse calendar file: %w", err)
	}

	events := make([]Event, 0, len(doc.Events))
	for _, fe := range doc.Events {
		date, err := dateutil.ParseDate(fe.Date)
		if err != nil {
			fc.logger.Warn("Failed to parse event date",
				zap.String("date", fe.Date),
				zap.Error(err))
			continue
		}

		eventType, ok := parseEventType(fe.Type)
		if !ok {
			fc.logger.Warn("Unknown event type",
				zap.String("type", fe.Type),
				zap.String("date", fe.Date))
			continue
		}

		events = append(events, Event{
			Date: date,
			Type: eventType,
			Name: fe.Name,
		})
	}

	fc.loaded = NewStaticCalendar(events)

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("events", len(events)))

	return nil
}

// Events returns overrides for dates in [from, to], sorted by date
func (fc *FileCalendar) Events(from, to time.Time) ([]Event, error) {
	if fc.loaded == nil {
		return nil, fmt.Errorf("calendar file not loaded: %s", fc.filePath)
	}
	return fc.loaded.Events(from, to)
}

// IsWorkday checks if the given date is a working day
func (fc *FileCalendar) IsWorkday(date time.Time) (bool, error) {
	if fc.loaded == nil {
		return false, fmt.Errorf("calendar file not loaded: %s", fc.filePath)
	}
	return fc.loaded.IsWorkday(date)
}

func parseEventType(token string) (EventType, bool) {
	switch token {
	case "holiday":
		return EventHoliday, true
	case "transferred_workday":
		return EventTransferredWorkday, true
	case "transferred_dayoff":
		return EventTransferredDayOff, true
	case "shortened_day":
		return EventShortenedDay, true
	default:
		return 0, false
	}
}
