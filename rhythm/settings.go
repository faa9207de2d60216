package rhythm

import (
	"math"
	"time"

	"github.com/robmorgan/pulse/utils"
)

const (
	DefaultMinBPM         = 30.0
	DefaultMaxBPM         = 500.0
	DefaultBPM            = 120.0
	DefaultMaxTapInterval = 2 * time.Second
	DefaultMinTapAmount   = 3
	DefaultVolume         = 0.5
	DefaultBeatsPerBar    = 4

	MinBeatsPerBar = 1
	MaxBeatsPerBar = 8

	// minTapAmount is the fewest taps that still yield one interval.
	minTapAmount = 2
)

// Settings holds the limits and defaults the metronome is built with. The tempo bounds are
// configuration rather than constants because earlier revisions capped the tempo at 400 bpm.
type Settings struct {
	MinBPM     float64 `yaml:"min_bpm"`
	MaxBPM     float64 `yaml:"max_bpm"`
	DefaultBPM float64 `yaml:"default_bpm"`

	// Taps older than MaxTapInterval are dropped from the estimate.
	MaxTapInterval time.Duration `yaml:"max_tap_interval"`

	// MinTapAmount is how many taps inside the window are needed before a tempo is estimated.
	MinTapAmount int `yaml:"min_tap_amount"`

	// DefaultVolume is used by volume resets and as the initial unmute level.
	DefaultVolume float64 `yaml:"default_volume"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MinBPM:         DefaultMinBPM,
		MaxBPM:         DefaultMaxBPM,
		DefaultBPM:     DefaultBPM,
		MaxTapInterval: DefaultMaxTapInterval,
		MinTapAmount:   DefaultMinTapAmount,
		DefaultVolume:  DefaultVolume,
	}
}

// normalized repairs any field that would break an invariant.
func (s Settings) normalized() Settings {
	if s.MinBPM <= 0 || math.IsNaN(s.MinBPM) || math.IsInf(s.MinBPM, 0) {
		s.MinBPM = DefaultMinBPM
	}
	if s.MaxBPM <= 0 || math.IsNaN(s.MaxBPM) || math.IsInf(s.MaxBPM, 0) {
		s.MaxBPM = DefaultMaxBPM
	}
	if s.MinBPM > s.MaxBPM {
		s.MinBPM, s.MaxBPM = s.MaxBPM, s.MinBPM
	}
	if math.IsNaN(s.DefaultBPM) || s.DefaultBPM == 0 {
		s.DefaultBPM = DefaultBPM
	}
	s.DefaultBPM = utils.Clamp(s.DefaultBPM, s.MinBPM, s.MaxBPM)

	if s.MaxTapInterval <= 0 {
		s.MaxTapInterval = DefaultMaxTapInterval
	}
	if s.MinTapAmount <= 0 {
		s.MinTapAmount = DefaultMinTapAmount
	} else if s.MinTapAmount < minTapAmount {
		s.MinTapAmount = minTapAmount
	}
	if !(s.DefaultVolume > 0 && s.DefaultVolume <= 1) {
		s.DefaultVolume = DefaultVolume
	}
	return s
}
