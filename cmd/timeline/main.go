package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/timeline-engine/internal/calendar"
	"github.com/username/timeline-engine/internal/config"
	"github.com/username/timeline-engine/internal/plan"
	"github.com/username/timeline-engine/internal/render"
	"github.com/username/timeline-engine/internal/series"
	"github.com/username/timeline-engine/internal/timeline"
	"github.com/username/timeline-engine/internal/watch"
	"github.com/username/timeline-engine/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "timeline",
		Short: "Project resource planning timeline",
		Long:  "Render Gantt-style day-grid timelines of project snapshots with production calendar integration",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(workdaysCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the timeline grid, bars and readiness curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			return renderTimeline(cfg, snapshotPath, os.Stdout)
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "snapshot.json", "Project snapshot JSON file")

	return cmd
}

func statusCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show aggregated planned/logged hours per hierarchy node",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			project, err := plan.LoadSnapshot(snapshotPath, logger)
			if err != nil {
				return err
			}

			today := dateutil.TodayIn(cfg.Timeline.Location())
			r := render.New(renderUnit(cfg), today, cfg.Render.Color)
			r.Status(os.Stdout, project)
			return nil
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "snapshot.json", "Project snapshot JSON file")

	return cmd
}

func workdaysCmd() *cobra.Command {
	var plannedHours float64

	cmd := &cobra.Command{
		Use:   "workdays <start> <end>",
		Short: "Count Mon-Fri days in an inclusive interval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[0], err)
			}
			end, err := dateutil.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", args[1], err)
			}

			count := timeline.CountWorkingDays(start, end)
			fmt.Printf("Working days: %d\n", count)

			if plannedHours > 0 {
				fmt.Printf("Average load: %.2fh/day\n",
					timeline.AvgHoursPerDay(plannedHours, start, end))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&plannedHours, "planned", 0, "Planned hours to spread over the interval")

	return cmd
}

func watchCmd() *cobra.Command {
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the timeline periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			renderPass := func() error {
				out := io.Writer(os.Stdout)
				if cfg.Watch.Output != "" {
					if err := os.MkdirAll(filepath.Dir(cfg.Watch.Output), 0o755); err != nil {
						return fmt.Errorf("failed to create output dir: %w", err)
					}
					f, err := os.OpenFile(cfg.Watch.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
					if err != nil {
						return fmt.Errorf("failed to open output file: %w", err)
					}
					defer f.Close()
					out = f
				}
				return renderTimeline(cfg, snapshotPath, out)
			}

			watcher := watch.NewWatcher(cfg.Watch.GetInterval(), renderPass, logger)
			return watcher.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "snapshot.json", "Project snapshot JSON file")

	return cmd
}

// renderTimeline runs one full render pass: window, grid, bars, curves
func renderTimeline(cfg *config.Config, snapshotPath string, out io.Writer) error {
	project, err := plan.LoadSnapshot(snapshotPath, logger)
	if err != nil {
		return err
	}

	cal, err := buildCalendar(cfg)
	if err != nil {
		return err
	}

	today := dateutil.TodayIn(cfg.Timeline.Location())
	rng := timeline.NewRange(today, cfg.Timeline.DaysBefore, cfg.Timeline.DaysAfter)

	events, err := cal.Events(rng.Start, rng.End)
	if err != nil {
		logger.Warn("Calendar unavailable, rendering without overrides",
			zap.Error(err))
		events = nil
	}

	cells := timeline.BuildGrid(rng, events, today, cfg.Timeline.Locale)

	r := render.New(renderUnit(cfg), today, cfg.Render.Color)
	r.Grid(out, cells)
	r.Bars(out, project, rng)

	for si := range project.Stages {
		stage := &project.Stages[si]
		if planned := plan.PlannedReadiness(stage); planned != nil {
			r.Curve(out, planned, rng, series.LinearMode, stage.Name+" (plan)")
		}

		for oi := range stage.Objects {
			object := &stage.Objects[oi]
			for ci := range object.Sections {
				section := &object.Sections[ci]
				if len(section.ReadinessActual) > 0 {
					actual := plan.ReadinessSeries(section.ReadinessActual)
					r.Curve(out, actual, rng, series.StepMode, section.Name+" (actual)")

					if delta := series.DeltaToday(actual, today); delta != nil {
						fmt.Fprintf(out, "  %s today: %+.1f%%\n", section.Name, *delta)
					}
				}
				if len(section.BudgetSpending) > 0 {
					budget := plan.BudgetSeries(section.BudgetSpending)
					r.Curve(out, normalizeToPercent(budget), rng, series.StepMode, section.Name+" (budget)")
				}
			}
		}
	}

	return nil
}

// normalizeToPercent rescales a currency series to 0-100 of its maximum
// so the sparkline glyph ramp applies
func normalizeToPercent(points []series.Point) []series.Point {
	max := 0.0
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	if max == 0 {
		return points
	}

	scaled := make([]series.Point, len(points))
	for i, p := range points {
		scaled[i] = series.Point{Date: p.Date, Value: p.Value / max * 100}
	}
	return scaled
}

func renderUnit(cfg *config.Config) timeline.Unit {
	if cfg.Render.Unit == "pixels" {
		return timeline.Pixels(cfg.Timeline.DayCellWidth)
	}
	return timeline.Percent()
}

func buildCalendar(cfg *config.Config) (calendar.Calendar, error) {
	switch cfg.Calendar.Type {
	case "", "static":
		logger.Info("Using static calendar (no overrides)")
		return calendar.NewStaticCalendar(nil), nil

	case "file":
		logger.Info("Using calendar file", zap.String("file", cfg.Calendar.File))
		fc := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		if err := fc.Load(); err != nil {
			return nil, err
		}
		return fc, nil

	case "isdayoff":
		logger.Info("Using isdayoff.ru calendar API")
		primary := calendar.NewIsDayOffCalendar(
			cfg.Calendar.FallbackURL,
			cfg.Calendar.GetCacheTTL(),
			logger,
		)

		if cfg.Calendar.File == "" {
			return primary, nil
		}

		fallback := calendar.NewFileCalendar(cfg.Calendar.File, logger)
		composite := calendar.NewCompositeCalendar(primary, fallback, logger)
		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback calendar, continuing with API only",
				zap.Error(err))
		}
		return composite, nil

	default:
		return nil, fmt.Errorf("unknown calendar type: %s", cfg.Calendar.Type)
	}
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
