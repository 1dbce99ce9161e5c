package plan

import (
	"github.com/username/timeline-engine/internal/series"
	"github.com/username/timeline-engine/pkg/dateutil"
)

// ReadinessSeries converts readiness checkpoints into a sorted series,
// silently skipping unparseable dates (the backend guarantees ISO dates;
// a bad one is upstream garbage, not a render-blocking error)
func ReadinessSeries(points []ReadinessPoint) []series.Point {
	converted := make([]series.Point, 0, len(points))
	for _, p := range points {
		date, err := dateutil.ParseDate(p.Date)
		if err != nil {
			continue
		}
		converted = append(converted, series.Point{Date: date, Value: p.Percentage})
	}
	return series.Sorted(converted)
}

// BudgetSeries converts budget-spending checkpoints into a sorted series
func BudgetSeries(points []BudgetPoint) []series.Point {
	converted := make([]series.Point, 0, len(points))
	for _, p := range points {
		date, err := dateutil.ParseDate(p.Date)
		if err != nil {
			continue
		}
		converted = append(converted, series.Point{Date: date, Value: p.Spent})
	}
	return series.Sorted(converted)
}

// PlannedReadiness is the planned trajectory of a stage: a straight line
// from 0% at its start date to 100% at its end date. Nil when the stage
// has no dates to anchor the line.
func PlannedReadiness(stage *Stage) []series.Point {
	if stage.StartDate == nil || *stage.StartDate == "" || stage.EndDate == nil || *stage.EndDate == "" {
		return nil
	}
	start, err := dateutil.ParseDate(*stage.StartDate)
	if err != nil {
		return nil
	}
	end, err := dateutil.ParseDate(*stage.EndDate)
	if err != nil {
		return nil
	}
	return series.PlannedLine(start, end)
}
