// Package render draws the computed timeline geometry as styled terminal
// output. It is presentation glue: every number it prints comes from the
// timeline, series and plan packages, never from its own date math.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/username/timeline-engine/internal/plan"
	"github.com/username/timeline-engine/internal/series"
	"github.com/username/timeline-engine/internal/timeline"
)

var curveGlyphs = []rune("▁▂▃▄▅▆▇█")

// Renderer writes timeline views to a writer
type Renderer struct {
	today   time.Time
	unit    timeline.Unit
	cellCh  timeline.Unit // one character per day, for terminal layout
	weekend lipgloss.Style
	holiday lipgloss.Style
	current lipgloss.Style
	bar     lipgloss.Style
	done    lipgloss.Style
	label   lipgloss.Style
}

// New creates a renderer. The unit controls the numeric positions printed
// in the legend; on-screen layout always uses one character per day cell.
func New(unit timeline.Unit, today time.Time, color bool) *Renderer {
	r := &Renderer{
		today:  today,
		unit:   unit,
		cellCh: timeline.Pixels(1),
	}

	if color {
		r.weekend = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		r.holiday = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
		r.current = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
		r.bar = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
		r.done = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
		r.label = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	} else {
		plain := lipgloss.NewStyle()
		r.weekend, r.holiday, r.current, r.bar, r.done, r.label = plain, plain, plain, plain, plain, plain
	}

	return r
}

// Grid prints the day header: month boundaries, day-of-month digits and
// day-of-week labels, with weekend/holiday/today styling
func (r *Renderer) Grid(w io.Writer, cells []timeline.DayCell) {
	var months, days, weekdays strings.Builder

	for _, cell := range cells {
		if cell.IsMonthStart || months.Len() == 0 {
			name := []rune(cell.MonthName)
			months.WriteRune(name[0])
		} else {
			months.WriteByte(' ')
		}

		digit := fmt.Sprintf("%d", cell.DayOfMonth%10)
		dow := string([]rune(cell.DayOfWeek)[0])

		switch {
		case cell.IsToday:
			days.WriteString(r.current.Render(digit))
			weekdays.WriteString(r.current.Render(dow))
		case cell.IsHoliday || cell.IsTransferredDayOff:
			days.WriteString(r.holiday.Render(digit))
			weekdays.WriteString(r.holiday.Render(dow))
		case !cell.IsWorkday:
			days.WriteString(r.weekend.Render(digit))
			weekdays.WriteString(r.weekend.Render(dow))
		default:
			days.WriteString(digit)
			weekdays.WriteString(dow)
		}
	}

	fmt.Fprintln(w, r.label.Render(months.String()))
	fmt.Fprintln(w, days.String())
	fmt.Fprintln(w, weekdays.String())
}

// row renders one bar line: entity bar cells filled over the window
func (r *Renderer) row(rng timeline.Range, pos *timeline.BarPosition, glyph rune) string {
	cells := make([]rune, rng.TotalDays)
	for i := range cells {
		cells[i] = '·'
	}
	if pos != nil {
		start := int(pos.Left)
		width := int(pos.Width)
		for i := start; i < start+width && i < len(cells); i++ {
			cells[i] = glyph
		}
	}
	return string(cells)
}

// Bars prints one line per stage and section with its clipped bar.
// Milestones overlay the stage line as diamonds.
func (r *Renderer) Bars(w io.Writer, project *plan.Project, rng timeline.Range) {
	for si := range project.Stages {
		stage := &project.Stages[si]

		pos := timeline.BarFor(stage.StartDate, stage.EndDate, rng, r.cellCh)
		line := []rune(r.row(rng, pos, '█'))
		for _, m := range stage.Milestones {
			if center := timeline.MilestoneFor(m.Date, rng, r.cellCh); center != nil {
				line[int(*center)] = '◆'
			}
		}
		fmt.Fprintf(w, "%s  %s\n", r.bar.Render(string(line)), r.label.Render(stage.Name))

		for oi := range stage.Objects {
			object := &stage.Objects[oi]
			for ci := range object.Sections {
				section := &object.Sections[ci]
				rollup := plan.AggregateSection(section)

				pos := timeline.BarForWorkdays(section.StartDate, section.EndDate, rng, r.cellCh)
				style := r.bar
				if rollup.DoneSections > 0 {
					style = r.done
				}

				// Numeric offsets in the configured unit, for copy-paste
				// into layout debugging sessions.
				legend := ""
				if numeric := timeline.BarForWorkdays(section.StartDate, section.EndDate, rng, r.unit); numeric != nil {
					legend = fmt.Sprintf(" [%.1f+%.1f]", numeric.Left, numeric.Width)
				}

				fmt.Fprintf(w, "%s  %s (%.0f/%.0fh, %.0f%%)%s\n",
					style.Render(r.row(rng, pos, '▓')),
					r.label.Render(section.Name),
					rollup.LoggedHours,
					rollup.PlannedHours,
					rollup.ProgressPercent,
					legend)
			}
		}
	}
}

// Curve prints a per-day sparkline of a 0-100 series over the window
func (r *Renderer) Curve(w io.Writer, points []series.Point, rng timeline.Range, mode series.Mode, name string) {
	values := series.FillRange(points, rng.Start, rng.End, mode, r.today)

	var line strings.Builder
	for _, v := range values {
		if v == nil {
			line.WriteByte(' ')
			continue
		}
		idx := int(*v / 100 * float64(len(curveGlyphs)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(curveGlyphs) {
			idx = len(curveGlyphs) - 1
		}
		line.WriteRune(curveGlyphs[idx])
	}

	fmt.Fprintf(w, "%s  %s\n", r.done.Render(line.String()), r.label.Render(name))
}

// Status prints the aggregated rollup table for the project hierarchy
func (r *Renderer) Status(w io.Writer, project *plan.Project) {
	total := plan.AggregateProject(project)

	fmt.Fprintf(w, "Project: %s\n", project.Name)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Stage / Section                  | Planned | Logged  | Progress")
	fmt.Fprintln(w, "  ---------------------------------+---------+---------+---------")

	for si := range project.Stages {
		stage := &project.Stages[si]
		rollup := plan.AggregateStage(stage)
		fmt.Fprintf(w, "  %-33s| %6.1fh | %6.1fh | %6.1f%%\n",
			stage.Name, rollup.PlannedHours, rollup.LoggedHours, rollup.ProgressPercent)

		for oi := range stage.Objects {
			object := &stage.Objects[oi]
			for ci := range object.Sections {
				section := &object.Sections[ci]
				rollup := plan.AggregateSection(section)
				fmt.Fprintf(w, "    %-31s| %6.1fh | %6.1fh | %6.1f%%\n",
					section.Name, rollup.PlannedHours, rollup.LoggedHours, rollup.ProgressPercent)
			}
		}
	}

	fmt.Fprintln(w, "  ---------------------------------+---------+---------+---------")
	fmt.Fprintf(w, "  %-33s| %6.1fh | %6.1fh | %6.1f%%\n",
		"Total", total.PlannedHours, total.LoggedHours, total.ProgressPercent)
	fmt.Fprintf(w, "  Sections: %d (%d done), leaves: %d (%d done)\n",
		total.Sections, total.DoneSections, total.Leaves, total.DoneLeaves)
}
