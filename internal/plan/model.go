// Package plan holds the project-hierarchy snapshot the planning backend
// exports and the rollup math computed over it. Entities are immutable
// value snapshots; nothing here is persisted or mutated in place.
package plan

import "sort"

// StatusDone is the terminal status of a leaf scheduling unit
const StatusDone = "done"

// WorkLog is a single logged-time record on a leaf unit
type WorkLog struct {
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	EmployeeName string  `json:"employeeName"`
}

// Loading is a fractional-time assignment of an employee to a date range.
// Rate is advisory: overlapping loadings are not validated to sum to 1.
type Loading struct {
	StartDate    *string `json:"startDate"`
	EndDate      *string `json:"endDate"`
	Rate         float64 `json:"rate"`
	EmployeeName string  `json:"employeeName"`
}

// ReadinessPoint is one sparse checkpoint of a readiness trajectory
type ReadinessPoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}

// BudgetPoint is one sparse checkpoint of budget spending
type BudgetPoint struct {
	Date  string  `json:"date"`
	Spent float64 `json:"spent"`
}

// Milestone is a single dated marker drawn as a diamond on the timeline
type Milestone struct {
	Date *string `json:"date"`
	Name string  `json:"name"`
}

// Task is the newer leaf shape: planned hours and work logs directly on
// the task instead of its parent decomposition stage
type Task struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Order        int       `json:"order"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	PlannedHours float64   `json:"plannedHours"`
	Status       string    `json:"status"`
	WorkLogs     []WorkLog `json:"workLogs,omitempty"`
}

// DecompositionStage is the leaf-most scheduling unit of the classic
// shape. When Tasks is populated the stage is only a grouping node and
// hours/logs live on the tasks.
type DecompositionStage struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Order        int       `json:"order"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	PlannedHours float64   `json:"plannedHours"`
	Status       string    `json:"status"`
	WorkLogs     []WorkLog `json:"workLogs,omitempty"`
	Tasks        []Task    `json:"tasks,omitempty"`
}

// Section is a design section of an object
type Section struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Order               int                  `json:"order"`
	StartDate           *string              `json:"startDate"`
	EndDate             *string              `json:"endDate"`
	DecompositionStages []DecompositionStage `json:"decompositionStages,omitempty"`
	Loadings            []Loading            `json:"loadings,omitempty"`
	ReadinessPlan       []ReadinessPoint     `json:"readinessPlan,omitempty"`
	ReadinessActual     []ReadinessPoint     `json:"readinessActual,omitempty"`
	BudgetSpending      []BudgetPoint        `json:"budgetSpending,omitempty"`
}

// Object is a construction object of a stage
type Object struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	Sections []Section `json:"sections,omitempty"`
}

// Stage is a project stage
type Stage struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Order      int         `json:"order"`
	StartDate  *string     `json:"startDate"`
	EndDate    *string     `json:"endDate"`
	Objects    []Object    `json:"objects,omitempty"`
	Milestones []Milestone `json:"milestones,omitempty"`
}

// Project is the root of the snapshot hierarchy
type Project struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Order  int     `json:"order"`
	Stages []Stage `json:"stages,omitempty"`
}

// Normalize sorts every child list by its Order field so traversal order
// is deterministic regardless of backend ordering
func (p *Project) Normalize() {
	sort.SliceStable(p.Stages, func(i, j int) bool { return p.Stages[i].Order < p.Stages[j].Order })
	for si := range p.Stages {
		stage := &p.Stages[si]
		sort.SliceStable(stage.Objects, func(i, j int) bool { return stage.Objects[i].Order < stage.Objects[j].Order })
		for oi := range stage.Objects {
			object := &stage.Objects[oi]
			sort.SliceStable(object.Sections, func(i, j int) bool { return object.Sections[i].Order < object.Sections[j].Order })
			for ci := range object.Sections {
				section := &object.Sections[ci]
				sort.SliceStable(section.DecompositionStages, func(i, j int) bool {
					return section.DecompositionStages[i].Order < section.DecompositionStages[j].Order
				})
				for di := range section.DecompositionStages {
					ds := &section.DecompositionStages[di]
					sort.SliceStable(ds.Tasks, func(i, j int) bool { return ds.Tasks[i].Order < ds.Tasks[j].Order })
				}
			}
		}
	}
}
