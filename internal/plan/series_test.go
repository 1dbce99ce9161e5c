package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/timeline-engine/internal/series"
)

func TestReadinessSeries(t *testing.T) {
	points := []ReadinessPoint{
		{Date: "2025-12-05", Percentage: 30},
		{Date: "2025-12-01", Percentage: 10},
		{Date: "oops", Percentage: 99},
	}

	got := ReadinessSeries(points)
	require.Len(t, got, 2)
	assert.Equal(t, 10.0, got[0].Value)
	assert.Equal(t, 30.0, got[1].Value)
	assert.True(t, got[0].Date.Before(got[1].Date))
}

func TestBudgetSeries(t *testing.T) {
	points := []BudgetPoint{
		{Date: "2025-12-03", Spent: 125000},
		{Date: "2025-12-01", Spent: 40000},
	}

	got := BudgetSeries(points)
	require.Len(t, got, 2)
	assert.Equal(t, 40000.0, got[0].Value)
	assert.Equal(t, 125000.0, got[1].Value)
}

func TestPlannedReadiness(t *testing.T) {
	stage := &Stage{
		StartDate: strptr("2025-12-01"),
		EndDate:   strptr("2025-12-11"),
	}

	line := PlannedReadiness(stage)
	require.Len(t, line, 2)
	assert.Equal(t, 0.0, line[0].Value)
	assert.Equal(t, 100.0, line[1].Value)

	mid := series.LinearAt(line, time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, mid)
	assert.InDelta(t, 50, *mid, 1e-9)

	// Stages without dates have no planned trajectory
	assert.Nil(t, PlannedReadiness(&Stage{}))
	assert.Nil(t, PlannedReadiness(&Stage{StartDate: strptr("2025-12-01")}))
}
