// Package config provides YAML-based configuration for the stimulus programs.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/gazelab/internal/calibration"
)

// ErrInvalid marks a config that loaded but cannot be used.
var ErrInvalid = errors.New("config: invalid")

// DotSweepConfig contains all configuration for the calibration sweep.
type DotSweepConfig struct {
	Motion    MotionConfig    `yaml:"motion"`
	Arrival   ArrivalConfig   `yaml:"arrival"`
	Display   DisplayConfig   `yaml:"display"`
	Recording RecordingConfig `yaml:"recording"`
}

// MotionConfig defines how the dot moves.
type MotionConfig struct {
	Speed    float64 `yaml:"speed"`
	Radius   float64 `yaml:"radius"`
	TickRate int     `yaml:"tick_rate"`
}

// ArrivalConfig selects target arrival detection.
type ArrivalConfig struct {
	Mode    string  `yaml:"mode"` // "epsilon" or "truncate"
	Epsilon float64 `yaml:"epsilon"`
}

// DisplayConfig defines how the sweep is drawn.
type DisplayConfig struct {
	Fullscreen bool   `yaml:"fullscreen"`
	PixelSize  int    `yaml:"pixel_size"`
	DotColor   string `yaml:"dot_color"`
	Background string `yaml:"background"`
}

// RecordingConfig defines the optional wearable recording session.
type RecordingConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Command         []string      `yaml:"command"`          // argv of the recorder process
	ConnectedMarker string        `yaml:"connected_marker"` // stdout line substring signalling connection
	OutputDir       string        `yaml:"output_dir"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	StopTimeout     time.Duration `yaml:"stop_timeout"`
}

// SpotDiffConfig contains all configuration for spot the difference.
type SpotDiffConfig struct {
	Screen       SizeConfig      `yaml:"screen"`
	Display      WindowConfig    `yaml:"display"`
	Images       ImagesConfig    `yaml:"images"`
	HUD          PointConfig     `yaml:"hud"`
	Highlight    HighlightConfig `yaml:"highlight"`
	Levels       LevelsConfig    `yaml:"levels"`
	LogPath      string          `yaml:"log_path"`
	AdvanceDelay time.Duration   `yaml:"advance_delay"` // pause after the last difference of a level
	TickRate     int             `yaml:"tick_rate"`
}

// SizeConfig is a width and height.
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WindowConfig selects the desktop window mode.
type WindowConfig struct {
	Fullscreen bool `yaml:"fullscreen"`
}

// PointConfig is a position on the layout.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ImagesConfig places the two level images.
type ImagesConfig struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Left   PointConfig `yaml:"left"`
	Right  PointConfig `yaml:"right"`
}

// HighlightConfig styles found differences.
type HighlightConfig struct {
	RingWidth  int    `yaml:"ring_width"`
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
}

// LevelsConfig locates level files.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`
	First int    `yaml:"first"`
}

// Validate checks the sweep configuration.
func (c DotSweepConfig) Validate() error {
	if !(c.Motion.Speed > 0) || math.IsInf(c.Motion.Speed, 0) {
		return fmt.Errorf("%w: motion.speed must be positive, got %v", ErrInvalid, c.Motion.Speed)
	}
	if c.Motion.Radius < 0 || math.IsNaN(c.Motion.Radius) {
		return fmt.Errorf("%w: motion.radius must not be negative, got %v", ErrInvalid, c.Motion.Radius)
	}
	if _, err := calibration.ParseArrival(c.Arrival.Mode); err != nil {
		return fmt.Errorf("%w: arrival.mode: %w", ErrInvalid, err)
	}
	if c.Arrival.Epsilon < 0 || math.IsNaN(c.Arrival.Epsilon) {
		return fmt.Errorf("%w: arrival.epsilon must not be negative, got %v", ErrInvalid, c.Arrival.Epsilon)
	}
	if c.Motion.TickRate <= 0 {
		return fmt.Errorf("%w: motion.tick_rate must be positive, got %d", ErrInvalid, c.Motion.TickRate)
	}
	if c.Display.PixelSize <= 0 {
		return fmt.Errorf("%w: display.pixel_size must be positive, got %d", ErrInvalid, c.Display.PixelSize)
	}
	if c.Recording.Enabled && len(c.Recording.Command) == 0 {
		return fmt.Errorf("%w: recording.command is required when recording is enabled", ErrInvalid)
	}
	return nil
}

// Validate checks the spot the difference configuration.
func (c SpotDiffConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Images.Width <= 0 || c.Images.Height <= 0 {
		return fmt.Errorf("%w: images %dx%d", ErrInvalid, c.Images.Width, c.Images.Height)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.Levels.Dir == "" {
		return fmt.Errorf("%w: levels.dir is required", ErrInvalid)
	}
	return nil
}
