package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var sweep DotSweepConfig
	if err := yaml.Unmarshal(defaultDotSweepYAML, &sweep); err != nil {
		t.Fatalf("embedded dotsweep.yaml: %v", err)
	}
	want := DefaultDotSweepConfig()
	if sweep.Motion != want.Motion || sweep.Arrival != want.Arrival || sweep.Display != want.Display {
		t.Errorf("embedded dotsweep = %+v, expected %+v", sweep, want)
	}
	if sweep.Recording.PollInterval != 100*time.Millisecond || sweep.Recording.ConnectTimeout != 30*time.Second {
		t.Errorf("embedded recording durations = %+v", sweep.Recording)
	}

	var spot SpotDiffConfig
	if err := yaml.Unmarshal(defaultSpotDiffYAML, &spot); err != nil {
		t.Fatalf("embedded spotdiff.yaml: %v", err)
	}
	if spot != DefaultSpotDiffConfig() {
		t.Errorf("embedded spotdiff = %+v, expected %+v", spot, DefaultSpotDiffConfig())
	}
}

func TestLoadDotSweepCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := []byte("motion:\n  speed: 8\narrival:\n  mode: truncate\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDotSweep(path)
	if err != nil {
		t.Fatalf("LoadDotSweep() failed: %v", err)
	}
	if cfg.Motion.Speed != 8 {
		t.Errorf("Speed = %v, expected 8", cfg.Motion.Speed)
	}
	if cfg.Arrival.Mode != "truncate" {
		t.Errorf("Arrival.Mode = %q, expected truncate", cfg.Arrival.Mode)
	}
	// Unset fields keep defaults
	if cfg.Motion.Radius != 15 || cfg.Motion.TickRate != 240 {
		t.Errorf("defaults not kept: %+v", cfg.Motion)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadSpotDiff(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("screen: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpotDiff(bad); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestLoadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := os.WriteFile(path, []byte("motion:\n  speed: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDotSweep(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero speed error = %v, expected ErrInvalid", err)
	}

	rec := filepath.Join(t.TempDir(), "rec.yaml")
	if err := os.WriteFile(rec, []byte("recording:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDotSweep(rec); !errors.Is(err, ErrInvalid) {
		t.Errorf("recording without command error = %v, expected ErrInvalid", err)
	}
}

func TestDotSweepValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DotSweepConfig)
	}{
		{"zero speed", func(c *DotSweepConfig) { c.Motion.Speed = 0 }},
		{"infinite speed", func(c *DotSweepConfig) { c.Motion.Speed = math.Inf(1) }},
		{"negative radius", func(c *DotSweepConfig) { c.Motion.Radius = -1 }},
		{"unknown arrival mode", func(c *DotSweepConfig) { c.Arrival.Mode = "truncated" }},
		{"negative epsilon", func(c *DotSweepConfig) { c.Arrival.Epsilon = -1 }},
		{"zero tick rate", func(c *DotSweepConfig) { c.Motion.TickRate = 0 }},
		{"zero pixel size", func(c *DotSweepConfig) { c.Display.PixelSize = 0 }},
	}

	if err := DefaultDotSweepConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDotSweepConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}

	for _, mode := range []string{"", "epsilon", "truncate"} {
		cfg := DefaultDotSweepConfig()
		cfg.Arrival.Mode = mode
		if err := cfg.Validate(); err != nil {
			t.Errorf("arrival mode %q rejected: %v", mode, err)
		}
	}
}

func TestLoadDotSweepRejectsBadArrival(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"misspelled mode", "arrival:\n  mode: truncated\n"},
		{"negative epsilon", "arrival:\n  epsilon: -1\n"},
		{"negative radius", "motion:\n  radius: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sweep.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadDotSweep(path); !errors.Is(err, ErrInvalid) {
				t.Errorf("LoadDotSweep() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadSpotDiffFullscreen(t *testing.T) {
	if DefaultSpotDiffConfig().Display.Fullscreen {
		t.Error("spotdiff should default to a window")
	}

	path := filepath.Join(t.TempDir(), "spot.yaml")
	if err := os.WriteFile(path, []byte("display:\n  fullscreen: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadSpotDiff(path)
	if err != nil {
		t.Fatalf("LoadSpotDiff() failed: %v", err)
	}
	if !cfg.Display.Fullscreen {
		t.Error("display.fullscreen not loaded")
	}
	if cfg.Screen.Width != 1400 {
		t.Errorf("defaults not kept: %+v", cfg.Screen)
	}
}

func TestSpotDiffValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SpotDiffConfig)
	}{
		{"zero screen", func(c *SpotDiffConfig) { c.Screen.Width = 0 }},
		{"zero image", func(c *SpotDiffConfig) { c.Images.Height = 0 }},
		{"zero tick rate", func(c *SpotDiffConfig) { c.TickRate = 0 }},
		{"no levels dir", func(c *SpotDiffConfig) { c.Levels.Dir = "" }},
	}

	if err := DefaultSpotDiffConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSpotDiffConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.gazelab/x.db")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".gazelab", "x.db") {
		t.Errorf("ExpandHome = %q", got)
	}

	if got, _ := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute path changed: %q", got)
	}
}
