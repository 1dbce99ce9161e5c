package plan

import (
	"github.com/username/timeline-engine/internal/timeline"
	"github.com/username/timeline-engine/pkg/dateutil"
)

// hoursPerLoadingDay converts a full-time loading day into hours when
// loadings stand in for missing work logs
const hoursPerLoadingDay = 8.0

// Rollup is the aggregated projection of a hierarchy subtree. It is
// recomputed from scratch on every call; the hierarchy is small enough
// that caching would only add staleness.
type Rollup struct {
	PlannedHours    float64
	LoggedHours     float64
	ProgressPercent float64
	Sections        int
	DoneSections    int
	Leaves          int
	DoneLeaves      int
}

// Progress derives the capped progress percentage: logged over planned,
// never above 100, and 0 when nothing is planned.
func Progress(plannedHours, loggedHours float64) float64 {
	if plannedHours <= 0 {
		return 0
	}
	percent := loggedHours / plannedHours * 100
	if percent > 100 {
		return 100
	}
	return percent
}

// leafPlannedHours returns the planned hours of a decomposition stage,
// reading the task level when the newer shape is populated
func (ds *DecompositionStage) leafPlannedHours() float64 {
	if len(ds.Tasks) == 0 {
		return ds.PlannedHours
	}
	total := 0.0
	for i := range ds.Tasks {
		total += ds.Tasks[i].PlannedHours
	}
	return total
}

// leafLogs returns the work logs of a decomposition stage from whichever
// level is populated: its own logs win, otherwise task logs are collected
func (ds *DecompositionStage) leafLogs() []WorkLog {
	if len(ds.WorkLogs) > 0 {
		return ds.WorkLogs
	}
	var logs []WorkLog
	for i := range ds.Tasks {
		logs = append(logs, ds.Tasks[i].WorkLogs...)
	}
	return logs
}

// leafDone reports whether every leaf-level status below the stage is done
func (ds *DecompositionStage) leafDone() bool {
	if len(ds.Tasks) == 0 {
		return ds.Status == StatusDone
	}
	for i := range ds.Tasks {
		if ds.Tasks[i].Status != StatusDone {
			return false
		}
	}
	return true
}

// LoadingHours estimates logged hours from a loading record: the rate
// spread over the working days of its interval at a full-time day. Used
// only when a section has no work logs at all.
func LoadingHours(l Loading) float64 {
	if l.StartDate == nil || *l.StartDate == "" || l.EndDate == nil || *l.EndDate == "" {
		return 0
	}
	start, err := dateutil.ParseDate(*l.StartDate)
	if err != nil {
		return 0
	}
	end, err := dateutil.ParseDate(*l.EndDate)
	if err != nil {
		return 0
	}
	return l.Rate * hoursPerLoadingDay * float64(timeline.CountWorkingDays(start, end))
}

// AggregateSection rolls up one section: planned and logged hours over
// its decomposition leaves, with loadings standing in when no leaf
// carries logs
func AggregateSection(section *Section) Rollup {
	r := Rollup{Sections: 1}

	sectionDone := len(section.DecompositionStages) > 0
	for i := range section.DecompositionStages {
		ds := &section.DecompositionStages[i]
		r.PlannedHours += ds.leafPlannedHours()
		for _, log := range ds.leafLogs() {
			r.LoggedHours += log.Hours
		}
		r.Leaves++
		if ds.leafDone() {
			r.DoneLeaves++
		} else {
			sectionDone = false
		}
	}

	if r.LoggedHours == 0 {
		for i := range section.Loadings {
			r.LoggedHours += LoadingHours(section.Loadings[i])
		}
	}

	if sectionDone {
		r.DoneSections = 1
	}
	r.ProgressPercent = Progress(r.PlannedHours, r.LoggedHours)
	return r
}

// AggregateObject rolls up all sections of an object
func AggregateObject(object *Object) Rollup {
	var r Rollup
	for i := range object.Sections {
		r.add(AggregateSection(&object.Sections[i]))
	}
	r.ProgressPercent = Progress(r.PlannedHours, r.LoggedHours)
	return r
}

// AggregateStage rolls up all objects of a stage
func AggregateStage(stage *Stage) Rollup {
	var r Rollup
	for i := range stage.Objects {
		r.add(AggregateObject(&stage.Objects[i]))
	}
	r.ProgressPercent = Progress(r.PlannedHours, r.LoggedHours)
	return r
}

// AggregateProject rolls up the whole hierarchy
func AggregateProject(project *Project) Rollup {
	var r Rollup
	for i := range project.Stages {
		r.add(AggregateStage(&project.Stages[i]))
	}
	r.ProgressPercent = Progress(r.PlannedHours, r.LoggedHours)
	return r
}

// add merges a child rollup into the receiver, leaving ProgressPercent
// for the caller to derive from the merged totals
func (r *Rollup) add(child Rollup) {
	r.PlannedHours += child.PlannedHours
	r.LoggedHours += child.LoggedHours
	r.Sections += child.Sections
	r.DoneSections += child.DoneSections
	r.Leaves += child.Leaves
	r.DoneLeaves += child.DoneLeaves
}
