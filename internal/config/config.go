package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Timeline TimelineConfig `mapstructure:"timeline"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Render   RenderConfig   `mapstructure:"render"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
}

// TimelineConfig sizes the visible window and the day grid
type TimelineConfig struct {
	DaysBefore   int     `mapstructure:"days_before"`
	DaysAfter    int     `mapstructure:"days_after"`
	DayCellWidth float64 `mapstructure:"day_cell_width"`
	Locale       string  `mapstructure:"locale"`
	Timezone     string  `mapstructure:"timezone"` // business timezone for "today", e.g. Europe/Moscow
}

// CalendarConfig selects the production-calendar source
type CalendarConfig struct {
	Type        string `mapstructure:"type"` // "static", "file" or "isdayoff"
	File        string `mapstructure:"file"`
	FallbackURL string `mapstructure:"fallback_url"` // xmlcalendar.ru template with {year}
	CacheTTL    string `mapstructure:"cache_ttl"`
}

// RenderConfig controls terminal output
type RenderConfig struct {
	Color bool   `mapstructure:"color"`
	Unit  string `mapstructure:"unit"` // "percent" or "pixels"
}

// WatchConfig controls the periodic re-render daemon
type WatchConfig struct {
	Interval string `mapstructure:"interval"`
	Output   string `mapstructure:"output"`
}

// LogConfig controls logging output
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.timeline-engine")
		v.AddConfigPath("/etc/timeline-engine")
	}

	v.SetDefault("timeline.days_before", 14)
	v.SetDefault("timeline.days_after", 28)
	v.SetDefault("timeline.day_cell_width", 24)
	v.SetDefault("timeline.locale", "en")
	v.SetDefault("calendar.type", "static")
	v.SetDefault("render.color", true)
	v.SetDefault("render.unit", "percent")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timeline.DaysBefore < 0 {
		return fmt.Errorf("timeline.days_before must not be negative")
	}
	if c.Timeline.DaysAfter < 0 {
		return fmt.Errorf("timeline.days_after must not be negative")
	}
	if c.Timeline.DaysBefore+c.Timeline.DaysAfter == 0 {
		return fmt.Errorf("timeline window must span at least one day")
	}
	if c.Timeline.DayCellWidth <= 0 {
		return fmt.Errorf("timeline.day_cell_width must be positive")
	}
	if c.Timeline.Timezone != "" {
		if _, err := time.LoadLocation(c.Timeline.Timezone); err != nil {
			return fmt.Errorf("timeline.timezone is invalid: %w", err)
		}
	}

	switch c.Calendar.Type {
	case "", "static":
		// No extra settings required
	case "file":
		if c.Calendar.File == "" {
			return fmt.Errorf("calendar.file is required for file type")
		}
	case "isdayoff":
		if c.Calendar.FallbackURL == "" {
			return fmt.Errorf("calendar.fallback_url is required for isdayoff type")
		}
	default:
		return fmt.Errorf("calendar.type must be 'static', 'file' or 'isdayoff', got '%s'", c.Calendar.Type)
	}

	switch c.Render.Unit {
	case "", "percent", "pixels":
	default:
		return fmt.Errorf("render.unit must be 'percent' or 'pixels', got '%s'", c.Render.Unit)
	}

	return nil
}

// Location returns the business timezone, defaulting to local time
func (c *TimelineConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetCacheTTL returns calendar cache TTL duration
func (c *CalendarConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetInterval returns the watch re-render interval duration
func (c *WatchConfig) GetInterval() time.Duration {
	if c.Interval == "" {
		return 15 * time.Minute
	}
	duration, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 15 * time.Minute
	}
	return duration
}
