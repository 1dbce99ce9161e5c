package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: IsDayOffCalendar (API)
// Fallback: FileCalendar (local YAML file)
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Events returns overrides for dates in [from, to], sorted by date
func (cc *CompositeCalendar) Events(from, to time.Time) ([]Event, error) {
	events, err := cc.primary.Events(from, to)
	if err == nil {
		return events, nil
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Error(err))

	return cc.fallback.Events(from, to)
}

// IsWorkday checks if the given date is a working day
func (cc *CompositeCalendar) IsWorkday(date time.Time) (bool, error) {
	workday, err := cc.primary.IsWorkday(date)
	if err == nil {
		return workday, nil
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.IsWorkday(date)
}

// LoadFallback loads the fallback calendar (if FileCalendar)
func (cc *CompositeCalendar) LoadFallback() error {
	if fc, ok := cc.fallback.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load fallback calendar: %w", err)
		}
		cc.logger.Info("Fallback calendar loaded successfully")
	}
	return nil
}
