package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/minitourney/internal/layout"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// ClockTime is a time of day in 24-hour "15:04" form.
type ClockTime struct {
	Hour   int
	Minute int
	set    bool
}

func (c *ClockTime) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("15:04", value.Value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value.Value, err)
	}
	c.Hour, c.Minute, c.set = t.Hour(), t.Minute(), true
	return nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Timing holds the rules-of-play durations, in minutes.
type Timing struct {
	HalfDuration     int `yaml:"half_duration"`
	HalfTimeDuration int `yaml:"half_time_duration"`
	SwapDuration     int `yaml:"swap_duration"`
}

type Config struct {
	Name      string    `yaml:"name"`
	Location  string    `yaml:"location"`
	Date      *Date     `yaml:"date"`
	StartTime ClockTime `yaml:"start_time"`
	Pitches   int       `yaml:"pitches"`
	Timing    Timing    `yaml:"timing"`
	Teams     []string  `yaml:"teams"`
}

// Params converts the config into layout generation inputs.
func (c *Config) Params() layout.Params {
	p := layout.Params{
		Teams:            append([]string(nil), c.Teams...),
		Pitches:          c.Pitches,
		HalfDuration:     c.Timing.HalfDuration,
		HalfTimeDuration: c.Timing.HalfTimeDuration,
		SwapDuration:     c.Timing.SwapDuration,
		StartHour:        c.StartTime.Hour,
		StartMinute:      c.StartTime.Minute,
	}
	if c.Date != nil {
		p.Date = c.Date.Time
	}
	return p
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.Pitches < 1 {
		return fmt.Errorf("pitches must be at least 1, got %d", c.Pitches)
	}

	if !c.StartTime.set {
		return fmt.Errorf("start_time is required")
	}

	if c.Timing.HalfDuration < 0 || c.Timing.HalfTimeDuration < 0 || c.Timing.SwapDuration < 0 {
		return fmt.Errorf("timing durations must not be negative")
	}

	if len(c.Teams) < 3 {
		return fmt.Errorf("at least 3 teams are required, got %d", len(c.Teams))
	}

	// Check for duplicate team names
	seen := make(map[string]bool)
	for _, team := range c.Teams {
		if strings.TrimSpace(team) == "" {
			return fmt.Errorf("team names must not be empty")
		}
		if seen[team] {
			return fmt.Errorf("team %q appears more than once", team)
		}
		seen[team] = true
	}

	return nil
}
