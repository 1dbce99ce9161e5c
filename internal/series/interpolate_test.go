package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func readiness() []Point {
	return []Point{
		{Date: date(2025, 12, 1), Value: 10},
		{Date: date(2025, 12, 5), Value: 30},
	}
}

func TestStepAt(t *testing.T) {
	today := date(2025, 12, 10)

	tests := []struct {
		name string
		at   time.Time
		want *float64
	}{
		{"before first point", date(2025, 11, 30), nil},
		{"exactly first point", date(2025, 12, 1), ptr(10.0)},
		{"between points holds last value", date(2025, 12, 3), ptr(10.0)},
		{"exactly second point", date(2025, 12, 5), ptr(30.0)},
		{"after last point up to today", date(2025, 12, 6), ptr(30.0)},
		{"today", date(2025, 12, 10), ptr(30.0)},
		{"beyond today", date(2025, 12, 11), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepAt(readiness(), tt.at, today)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.InDelta(t, *tt.want, *got, 1e-9)
			}
		})
	}
}

func TestStepAt_HorizonBeyondToday(t *testing.T) {
	// When the last checkpoint is later than today the horizon extends to it
	today := date(2025, 12, 3)
	got := StepAt(readiness(), date(2025, 12, 5), today)
	require.NotNil(t, got)
	assert.InDelta(t, 30, *got, 1e-9)

	assert.Nil(t, StepAt(readiness(), date(2025, 12, 6), today))
}

func TestStepAt_EmptySeries(t *testing.T) {
	assert.Nil(t, StepAt(nil, date(2025, 12, 3), date(2025, 12, 10)))
}

func TestStepAt_DuplicateDateLastWins(t *testing.T) {
	points := []Point{
		{Date: date(2025, 12, 1), Value: 10},
		{Date: date(2025, 12, 1), Value: 15},
	}
	got := StepAt(points, date(2025, 12, 2), date(2025, 12, 10))
	require.NotNil(t, got)
	assert.InDelta(t, 15, *got, 1e-9)
}

func TestStepAt_BusinessTimezoneToday(t *testing.T) {
	// Today arrives as a business-timezone midnight; the reporting horizon
	// must still extend through today's full calendar day
	msk := time.FixedZone("MSK", 3*60*60)
	today := time.Date(2025, 12, 6, 0, 0, 0, 0, msk)

	got := StepAt(readiness(), date(2025, 12, 6), today)
	require.NotNil(t, got)
	assert.Equal(t, 30.0, *got)
}

func TestLinearAt(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{"before first clamps to first", date(2025, 11, 20), 10},
		{"first point", date(2025, 12, 1), 10},
		{"halfway", date(2025, 12, 3), 20},
		{"quarter", date(2025, 12, 2), 15},
		{"last point", date(2025, 12, 5), 30},
		{"after last clamps to last", date(2025, 12, 20), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearAt(readiness(), tt.at)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestLinearAt_DegenerateSegment(t *testing.T) {
	points := []Point{
		{Date: date(2025, 12, 1), Value: 10},
		{Date: date(2025, 12, 1), Value: 40},
		{Date: date(2025, 12, 3), Value: 40},
	}

	got := LinearAt(points, date(2025, 12, 2))
	require.NotNil(t, got)
	assert.InDelta(t, 40, *got, 1e-9)

	assert.Nil(t, LinearAt(nil, date(2025, 12, 2)))
}

func TestPlannedLine(t *testing.T) {
	line := PlannedLine(date(2025, 12, 1), date(2025, 12, 11))
	require.Len(t, line, 2)
	assert.Equal(t, 0.0, line[0].Value)
	assert.Equal(t, 100.0, line[1].Value)

	// Halfway through the stage the planned readiness is 50%
	mid := LinearAt(line, date(2025, 12, 6))
	require.NotNil(t, mid)
	assert.InDelta(t, 50, *mid, 1e-9)
}

func TestDeltaToday(t *testing.T) {
	today := date(2025, 12, 5)

	points := []Point{
		{Date: date(2025, 12, 4), Value: 25},
		{Date: date(2025, 12, 5), Value: 30},
	}
	delta := DeltaToday(points, today)
	require.NotNil(t, delta)
	assert.InDelta(t, 5, *delta, 1e-9)

	// No interpolation inside the delta: a gap yesterday means no badge
	assert.Nil(t, DeltaToday(readiness(), today))

	// Missing today's point likewise
	assert.Nil(t, DeltaToday([]Point{{Date: date(2025, 12, 4), Value: 25}}, today))
}

func TestSorted(t *testing.T) {
	unsorted := []Point{
		{Date: date(2025, 12, 5), Value: 30},
		{Date: date(2025, 12, 1), Value: 10},
		{Date: date(2025, 12, 3), Value: 20},
	}

	sorted := Sorted(unsorted)
	require.Len(t, sorted, 3)
	assert.Equal(t, 10.0, sorted[0].Value)
	assert.Equal(t, 20.0, sorted[1].Value)
	assert.Equal(t, 30.0, sorted[2].Value)

	// Input left untouched
	assert.Equal(t, 30.0, unsorted[0].Value)
}

func TestFillRange(t *testing.T) {
	today := date(2025, 12, 10)

	values := FillRange(readiness(), date(2025, 11, 30), date(2025, 12, 5), StepMode, today)
	require.Len(t, values, 6)
	assert.Nil(t, values[0]) // before first point
	for i, want := range []float64{10, 10, 10, 10, 30} {
		require.NotNil(t, values[i+1], "day %d", i+1)
		assert.InDelta(t, want, *values[i+1], 1e-9)
	}

	linear := FillRange(readiness(), date(2025, 12, 1), date(2025, 12, 5), LinearMode, today)
	require.Len(t, linear, 5)
	for i, want := range []float64{10, 15, 20, 25, 30} {
		require.NotNil(t, linear[i])
		assert.InDelta(t, want, *linear[i], 1e-9)
	}

	assert.Nil(t, FillRange(readiness(), date(2025, 12, 5), date(2025, 12, 1), StepMode, today))
}

func ptr(v float64) *float64 { return &v }
