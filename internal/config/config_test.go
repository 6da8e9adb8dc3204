package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testConfigYAML = `
name: Spring Sevens
location: Riverside Fields
date: "2026-05-09"
start_time: "10:00"
pitches: 2

timing:
  half_duration: 7
  half_time_duration: 2
  swap_duration: 5

teams: [Ravens, Wolves, Otters, Herons, Badgers, Foxes, Kites, Stags, Hares, Owls, Lynx]
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("tournament details", func(t *testing.T) {
		if cfg.Name != "Spring Sevens" {
			t.Errorf("name = %q, want Spring Sevens", cfg.Name)
		}
		if cfg.Location != "Riverside Fields" {
			t.Errorf("location = %q, want Riverside Fields", cfg.Location)
		}
		want := time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)
		if cfg.Date == nil || !cfg.Date.Time.Equal(want) {
			t.Errorf("date = %v, want 2026-05-09", cfg.Date)
		}
	})

	t.Run("start time", func(t *testing.T) {
		if cfg.StartTime.Hour != 10 || cfg.StartTime.Minute != 0 {
			t.Errorf("start time = %s, want 10:00", cfg.StartTime)
		}
	})

	t.Run("timing", func(t *testing.T) {
		if cfg.Timing.HalfDuration != 7 || cfg.Timing.HalfTimeDuration != 2 || cfg.Timing.SwapDuration != 5 {
			t.Errorf("timing = %+v, want 7/2/5", cfg.Timing)
		}
	})

	t.Run("teams", func(t *testing.T) {
		if len(cfg.Teams) != 11 {
			t.Errorf("teams = %d, want 11", len(cfg.Teams))
		}
		if cfg.Teams[0] != "Ravens" {
			t.Errorf("first team = %q, want Ravens", cfg.Teams[0])
		}
	})

	t.Run("params", func(t *testing.T) {
		p := cfg.Params()
		if p.Pitches != 2 || p.StartHour != 10 || p.StartMinute != 0 {
			t.Errorf("params = %+v", p)
		}
		if p.HalfDuration != 7 || p.HalfTimeDuration != 2 || p.SwapDuration != 5 {
			t.Errorf("params timing = %d/%d/%d, want 7/2/5", p.HalfDuration, p.HalfTimeDuration, p.SwapDuration)
		}
		if !p.Date.Equal(time.Date(2026, 5, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("params date = %v", p.Date)
		}
		p.Teams[0] = "changed"
		if cfg.Teams[0] != "Ravens" {
			t.Error("Params shares the team slice with the config")
		}
	})
}

func TestParamsWithoutDate(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
start_time: "09:30"
pitches: 1
timing: {half_duration: 10}
teams: [A, B, C]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := cfg.Params()
	if !p.Date.IsZero() {
		t.Errorf("date = %v, want zero", p.Date)
	}
	if p.StartHour != 9 || p.StartMinute != 30 {
		t.Errorf("start = %02d:%02d, want 09:30", p.StartHour, p.StartMinute)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Pitches != 2 {
		t.Errorf("pitches = %d, want 2", cfg.Pitches)
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "no pitches",
			yaml: `
start_time: "10:00"
pitches: 0
teams: [A, B, C]
`,
			wantErr: "pitches must be at least 1",
		},
		{
			name: "missing start time",
			yaml: `
pitches: 1
teams: [A, B, C]
`,
			wantErr: "start_time is required",
		},
		{
			name: "negative timing",
			yaml: `
start_time: "10:00"
pitches: 1
timing: {half_duration: -5}
teams: [A, B, C]
`,
			wantErr: "must not be negative",
		},
		{
			name: "too few teams",
			yaml: `
start_time: "10:00"
pitches: 1
teams: [A, B]
`,
			wantErr: "at least 3 teams",
		},
		{
			name: "duplicate team",
			yaml: `
start_time: "10:00"
pitches: 1
teams: [A, B, A]
`,
			wantErr: `team "A" appears more than once`,
		},
		{
			name: "empty team name",
			yaml: `
start_time: "10:00"
pitches: 1
teams: [A, B, ""]
`,
			wantErr: "must not be empty",
		},
		{
			name: "invalid start time",
			yaml: `
start_time: "25:99"
pitches: 1
teams: [A, B, C]
`,
			wantErr: "invalid time",
		},
		{
			name: "invalid date",
			yaml: `
date: "09/05/2026"
start_time: "10:00"
pitches: 1
teams: [A, B, C]
`,
			wantErr: "invalid date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
