package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/timeline-engine/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	isdayoffBaseURL    = "https://isdayoff.ru"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// IsDayOffCalendar implements Calendar using the isdayoff.ru API with an
// xmlcalendar.ru JSON feed as fallback. Month results are cached with a TTL.
type IsDayOffCalendar struct {
	httpClient   *http.Client
	logger       *zap.Logger
	cache        map[string]*cachedMonth
	cacheMu      sync.RWMutex
	cacheTTL     time.Duration
	fallbackURL  string
	fallbackData map[int]*xmlCalendarYear // year → calendar data
}

type cachedMonth struct {
	events    []Event
	fetchedAt time.Time
}

// xmlCalendarYear represents xmlcalendar.ru JSON structure
type xmlCalendarYear struct {
	Year   int                `json:"year"`
	Months []xmlCalendarMonth `json:"months"`
}

type xmlCalendarMonth struct {
	Month int    `json:"month"`
	Days  string `json:"days"` // "1*,2,3+,4,8,9,..." where * = shortened, + = transferred
}

// NewIsDayOffCalendar creates a new IsDayOffCalendar instance
func NewIsDayOffCalendar(fallbackURL string, cacheTTL time.Duration, logger *zap.Logger) *IsDayOffCalendar {
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &IsDayOffCalendar{
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:       logger,
		cache:        make(map[string]*cachedMonth),
		cacheTTL:     cacheTTL,
		fallbackURL:  fallbackURL,
		fallbackData: make(map[int]*xmlCalendarYear),
	}
}

// Events returns overrides for calendar days in [from, to], sorted by
// date. Bounds may carry any timezone; only their nominal days matter.
func (c *IsDayOffCalendar) Events(from, to time.Time) ([]Event, error) {
	from = dateutil.DayUTC(from)
	to = dateutil.DayUTC(to)

	var result []Event
	for cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location()); !cursor.After(to); cursor = cursor.AddDate(0, 1, 0) {
		monthEvents, err := c.monthEvents(cursor.Year(), cursor.Month())
		if err != nil {
			return nil, err
		}
		for _, ev := range monthEvents {
			if ev.Date.Before(from) || ev.Date.After(to) {
				continue
			}
			result = append(result, ev)
		}
	}
	return result, nil
}

// IsWorkday checks if the given date is a working day
func (c *IsDayOffCalendar) IsWorkday(date time.Time) (bool, error) {
	date = dateutil.StartOfDay(date)

	monthEvents, err := c.monthEvents(date.Year(), date.Month())
	if err != nil {
		return false, err
	}

	workday := dateutil.IsWeekday(date)
	for _, ev := range monthEvents {
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

// monthEvents returns cached events for the month, fetching on miss
func (c *IsDayOffCalendar) monthEvents(year int, month time.Month) ([]Event, error) {
	cacheKey := fmt.Sprintf("%d-%02d", year, month)

	c.cacheMu.RLock()
	if cached, ok := c.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached month events",
				zap.String("month", cacheKey))
			return cached.events, nil
		}
	}
	c.cacheMu.RUnlock()

	events, err := c.fetchMonthFromAPI(year, month)
	if err != nil {
		c.logger.Warn("Failed to fetch from API, trying fallback",
			zap.String("month", cacheKey),
			zap.Error(err))

		var fallbackErr error
		events, fallbackErr = c.fetchMonthFromFallback(year, month)
		if fallbackErr != nil {
			return nil, fmt.Errorf("API and fallback both failed: API=%w, Fallback=%v", err, fallbackErr)
		}

		c.logger.Info("Using fallback data", zap.String("month", cacheKey))
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = &cachedMonth{
		events:    events,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	return events, nil
}

// fetchMonthFromAPI fetches entire month from isdayoff.ru bulk API
func (c *IsDayOffCalendar) fetchMonthFromAPI(year int, month time.Month) ([]Event, error) {
	// Build URL: https://isdayoff.ru/api/getdata?year=2025&month=11&pre=1
	url := fmt.Sprintf("%s/api/getdata?year=%d&month=%d&pre=1",
		isdayoffBaseURL, year, int(month))

	c.logger.Debug("Fetching month from isdayoff.ru",
		zap.String("url", url),
		zap.Int("year", year),
		zap.Int("month", int(month)))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	events, err := c.parseBulkResponse(year, month, string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse bulk response: %w", err)
	}

	c.logger.Info("Month events fetched from API",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("events", len(events)))

	return events, nil
}

// parseBulkResponse parses isdayoff.ru bulk response string into override
// events. Format: "211100011000001100000110000011" where:
// 0 = working day
// 1 = non-working day (holiday/weekend)
// 2 = shortened working day
// Only deviations from the plain Sat/Sun weekend rule become events.
func (c *IsDayOffCalendar) parseBulkResponse(year int, month time.Month, data string) ([]Event, error) {
	data = strings.TrimSpace(data)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	if len(data) != daysInMonth {
		return nil, fmt.Errorf("bulk data length mismatch: expected %d, got %d", daysInMonth, len(data))
	}

	var events []Event
	for i, code := range data {
		date := time.Date(year, month, i+1, 0, 0, 0, 0, time.UTC)
		weekend := dateutil.IsWeekend(date)

		switch code {
		case '0':
			if weekend {
				events = append(events, Event{Date: date, Type: EventTransferredWorkday})
			}
		case '1':
			if !weekend {
				events = append(events, Event{Date: date, Type: EventHoliday})
			}
		case '2':
			if weekend {
				events = append(events, Event{Date: date, Type: EventTransferredWorkday})
			}
			events = append(events, Event{Date: date, Type: EventShortenedDay})
		default:
			return nil, fmt.Errorf("unknown code '%c' at position %d", code, i)
		}
	}

	return events, nil
}

// fetchMonthFromFallback fetches month from xmlcalendar.ru
func (c *IsDayOffCalendar) fetchMonthFromFallback(year int, month time.Month) ([]Event, error) {
	c.cacheMu.RLock()
	yearData, exists := c.fallbackData[year]
	c.cacheMu.RUnlock()

	if !exists {
		var err error
		yearData, err = c.downloadFallbackYear(year)
		if err != nil {
			return nil, fmt.Errorf("failed to download fallback data: %w", err)
		}

		c.cacheMu.Lock()
		c.fallbackData[year] = yearData
		c.cacheMu.Unlock()
	}

	var xmlMonth *xmlCalendarMonth
	for i := range yearData.Months {
		if yearData.Months[i].Month == int(month) {
			xmlMonth = &yearData.Months[i]
			break
		}
	}

	if xmlMonth == nil {
		return nil, fmt.Errorf("month %d not found in fallback data for year %d", month, year)
	}

	return c.parseXMLCalendarMonth(year, month, xmlMonth)
}

// downloadFallbackYear downloads entire year from xmlcalendar.ru
func (c *IsDayOffCalendar) downloadFallbackYear(year int) (*xmlCalendarYear, error) {
	url := strings.ReplaceAll(c.fallbackURL, "{year}", strconv.Itoa(year))

	c.logger.Info("Downloading fallback calendar data",
		zap.String("url", url),
		zap.Int("year", year))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fallback data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fallback API returned status %d", resp.StatusCode)
	}

	var yearData xmlCalendarYear
	if err := json.NewDecoder(resp.Body).Decode(&yearData); err != nil {
		return nil, fmt.Errorf("failed to parse fallback JSON: %w", err)
	}

	c.logger.Info("Fallback data downloaded",
		zap.Int("year", year),
		zap.Int("months", len(yearData.Months)))

	return &yearData, nil
}

// parseXMLCalendarMonth parses xmlcalendar.ru compact format into events.
// Format: "1*,2,3+,4,8,9,15,16,22,23,29,30"
// Listed days are non-working, * = shortened working day, + = transferred
// day off. Weekends absent from the list are transferred working days.
func (c *IsDayOffCalendar) parseXMLCalendarMonth(year int, month time.Month, xmlMonth *xmlCalendarMonth) ([]Event, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	markers := make(map[int]rune) // day → marker (* or + or 0)
	if xmlMonth.Days != "" {
		parts := strings.Split(xmlMonth.Days, ",")
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			marker := rune(0)
			dayStr := part

			if strings.HasSuffix(part, "*") {
				marker = '*' // shortened
				dayStr = strings.TrimSuffix(part, "*")
			} else if strings.HasSuffix(part, "+") {
				marker = '+' // transferred
				dayStr = strings.TrimSuffix(part, "+")
			}

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				c.logger.Warn("Failed to parse day number",
					zap.String("part", part),
					zap.Error(err))
				continue
			}

			markers[day] = marker
		}
	}

	var events []Event
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		weekend := dateutil.IsWeekend(date)
		marker, listed := markers[day]

		switch {
		case marker == '*':
			events = append(events, Event{Date: date, Type: EventShortenedDay})
		case listed && !weekend && marker == '+':
			events = append(events, Event{Date: date, Type: EventTransferredDayOff})
		case listed && !weekend:
			events = append(events, Event{Date: date, Type: EventHoliday})
		case !listed && weekend:
			events = append(events, Event{Date: date, Type: EventTransferredWorkday})
		}
	}

	return events, nil
}

// ClearCache clears the cache
func (c *IsDayOffCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[string]*cachedMonth)
	c.fallbackData = make(map[int]*xmlCalendarYear)
	c.logger.Info("Calendar cache cleared")
}
