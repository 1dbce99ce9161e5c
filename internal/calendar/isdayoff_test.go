package calendar

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestIsDayOffCalendar_ParseBulkResponse(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := NewIsDayOffCalendar("https://xmlcalendar.ru/data/ru/{year}/calendar.json", 24*time.Hour, logger)

	// November 2025: Nov 1 (Sat) is a shortened transferred workday, Nov 3-4
	// (Mon-Tue) are holidays, the rest follows the weekend pattern.
	data := "211100011000001100000110000011"

	events, err := cal.parseBulkResponse(2025, time.November, data)
	if err != nil {
		t.Fatalf("parseBulkResponse() error = %v", err)
	}

	byDate := map[string][]EventType{}
	for _, ev := range events {
		key := ev.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], ev.Type)
	}

	if !hasType(byDate["2025-11-01"], EventTransferredWorkday) {
		t.Error("Nov 1 (Sat, code 2) must be a transferred workday")
	}
	if !hasType(byDate["2025-11-01"], EventShortenedDay) {
		t.Error("Nov 1 (code 2) must carry the shortened-day marker")
	}
	if !hasType(byDate["2025-11-03"], EventHoliday) {
		t.Error("Nov 3 (Mon, code 1) must be a holiday")
	}
	if !hasType(byDate["2025-11-04"], EventHoliday) {
		t.Error("Nov 4 (Tue, code 1) must be a holiday")
	}

	// Plain weekends and plain workdays produce no events at all
	if _, ok := byDate["2025-11-08"]; ok {
		t.Error("Nov 8 (plain Saturday) must not produce an event")
	}
	if _, ok := byDate["2025-11-05"]; ok {
		t.Error("Nov 5 (plain Wednesday) must not produce an event")
	}
}

func TestIsDayOffCalendar_ParseBulkResponse_LengthMismatch(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := NewIsDayOffCalendar("", 24*time.Hour, logger)

	if _, err := cal.parseBulkResponse(2025, time.November, "10101"); err == nil {
		t.Error("short bulk data must be rejected")
	}
}

func TestIsDayOffCalendar_ParseBulkResponse_UnknownCode(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := NewIsDayOffCalendar("", 24*time.Hour, logger)

	data := "911100011000001100000110000011" // 30 chars, bad first code
	if _, err := cal.parseBulkResponse(2025, time.November, data); err == nil {
		t.Error("unknown code must be rejected")
	}
}

func TestIsDayOffCalendar_ParseXMLCalendarMonth(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := NewIsDayOffCalendar("https://xmlcalendar.ru/data/ru/{year}/calendar.json", 24*time.Hour, logger)

	// January 2025: 1-8 holidays, weekends listed, Jan 31 shortened
	xmlMonth := &xmlCalendarMonth{
		Month: 1,
		Days:  "1,2,3,4,5,6,7,8,11,12,18,19,25,26,31*",
	}

	events, err := cal.parseXMLCalendarMonth(2025, time.January, xmlMonth)
	if err != nil {
		t.Fatalf("parseXMLCalendarMonth() error = %v", err)
	}

	byDate := map[string][]EventType{}
	for _, ev := range events {
		key := ev.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], ev.Type)
	}

	// Jan 1 2025 is a Wednesday: listed weekday → holiday
	if !hasType(byDate["2025-01-01"], EventHoliday) {
		t.Error("Jan 1 must be a holiday")
	}
	// Jan 4 is a Saturday and listed: plain weekend, no event
	if _, ok := byDate["2025-01-04"]; ok {
		t.Error("listed Saturday must not produce an event")
	}
	// Jan 31 is a Friday with *: shortened working day
	if !hasType(byDate["2025-01-31"], EventShortenedDay) {
		t.Error("Jan 31 must be shortened")
	}
	// Jan 13 (Mon, unlisted) is a plain workday
	if _, ok := byDate["2025-01-13"]; ok {
		t.Error("unlisted Monday must not produce an event")
	}
}

func TestIsDayOffCalendar_ParseXMLCalendarMonth_TransferredMarkers(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	cal := NewIsDayOffCalendar("", 24*time.Hour, logger)

	// November 2025 in xmlcalendar form: Nov 3 carries the transferred
	// marker, the unlisted Saturday Nov 1 works instead.
	xmlMonth := &xmlCalendarMonth{
		Month: 11,
		Days:  "2,3+,4,8,9,15,16,22,23,29,30",
	}

	events, err := cal.parseXMLCalendarMonth(2025, time.November, xmlMonth)
	if err != nil {
		t.Fatalf("parseXMLCalendarMonth() error = %v", err)
	}

	byDate := map[string][]EventType{}
	for _, ev := range events {
		key := ev.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], ev.Type)
	}

	if !hasType(byDate["2025-11-03"], EventTransferredDayOff) {
		t.Error("Nov 3 (Mon, '+') must be a transferred day off")
	}
	if !hasType(byDate["2025-11-01"], EventTransferredWorkday) {
		t.Error("Nov 1 (unlisted Saturday) must be a transferred workday")
	}
	if !hasType(byDate["2025-11-04"], EventHoliday) {
		t.Error("Nov 4 (Tue, listed) must be a holiday")
	}
}

func hasType(types []EventType, want EventType) bool {
	for _, tt := range types {
		if tt == want {
			return true
		}
	}
	return false
}
