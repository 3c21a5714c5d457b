package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/dotsweep.yaml
var defaultDotSweepYAML []byte

//go:embed defaults/spotdiff.yaml
var defaultSpotDiffYAML []byte

// DefaultDotSweepConfig returns the default calibration sweep configuration.
func DefaultDotSweepConfig() DotSweepConfig {
	return DotSweepConfig{
		Motion: MotionConfig{
			Speed:    5.0,
			Radius:   15,
			TickRate: 240,
		},
		Arrival: ArrivalConfig{
			Mode:    "epsilon",
			Epsilon: 0.5,
		},
		Display: DisplayConfig{
			Fullscreen: true,
			PixelSize:  10,
			DotColor:   "#ff0000",
			Background: "#000000",
		},
		Recording: RecordingConfig{
			ConnectedMarker: "connected",
			OutputDir:       "~/.gazelab/recordings",
			PollInterval:    100 * time.Millisecond,
			ConnectTimeout:  30 * time.Second,
			StopTimeout:     10 * time.Second,
		},
	}
}

// DefaultSpotDiffConfig returns the default spot the difference configuration.
func DefaultSpotDiffConfig() SpotDiffConfig {
	return SpotDiffConfig{
		Screen:  SizeConfig{Width: 1400, Height: 700},
		Display: WindowConfig{Fullscreen: false},
		Images: ImagesConfig{
			Width:  600,
			Height: 600,
			Left:   PointConfig{X: 50, Y: 50},
			Right:  PointConfig{X: 750, Y: 50},
		},
		HUD: PointConfig{X: 50, Y: 660},
		Highlight: HighlightConfig{
			RingWidth:  3,
			Color:      "#00ff00",
			Background: "#dcdcdc",
		},
		Levels: LevelsConfig{
			Dir:   "Simple Images",
			First: 1,
		},
		LogPath:      "click_log.csv",
		AdvanceDelay: 600 * time.Millisecond,
		TickRate:     60,
	}
}
