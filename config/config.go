package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/pulse/effect"
	"github.com/robmorgan/pulse/profile"
	"github.com/robmorgan/pulse/rhythm"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel    = "info"
	DefaultOLAAddress  = "localhost:9010"
	DefaultOSCAddress  = ":9000"
	DefaultOutputFPS   = 40
	DefaultSendTick    = 40 * time.Millisecond
	DefaultFlashDecay  = 0.6
	DefaultAccentColor = "#FF3300"
	DefaultBeatColor   = "#0066FF"

	MaxOutputFPS = 120
)

// PulseConfig represents options that configure the global behavior of the program
type PulseConfig struct {
	// Rhythm holds the tempo bounds and the tap and volume defaults.
	Rhythm rhythm.Settings `yaml:"rhythm"`

	// Initial holds the values the metronome starts with.
	Initial InitialConfig `yaml:"initial"`

	// Output configures the DMX beat flash.
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Remote is the OSC control surface.
	Remote RemoteConfig `yaml:"remote"`

	// Profiles stores the fixture profiles by name
	Profiles map[string]profile.Profile `yaml:"profiles"`

	// PatchedFixtures stores all of the patched fixtures
	PatchedFixtures []PatchedFixture `yaml:"fixtures"`
}

type InitialConfig struct {
	Tempo       float64 `yaml:"tempo"`
	Volume      float64 `yaml:"volume"`
	BeatsPerBar int     `yaml:"beats_per_bar"`
}

type OutputConfig struct {
	Enabled     bool          `yaml:"enabled"`
	OLAAddress  string        `yaml:"ola_address"`
	FPS         int           `yaml:"fps"`
	SendTick    time.Duration `yaml:"send_tick"`
	FlashDecay  float64       `yaml:"flash_decay"`
	Easing      string        `yaml:"easing"`
	AccentColor string        `yaml:"accent_color"`
	BeatColor   string        `yaml:"beat_color"`
}

type RemoteConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Create a new PulseConfig object with reasonable defaults for real usage
func NewPulseConfig() *PulseConfig {
	return &PulseConfig{
		Rhythm: rhythm.DefaultSettings(),
		Initial: InitialConfig{
			Tempo:       rhythm.DefaultBPM,
			Volume:      rhythm.DefaultVolume,
			BeatsPerBar: rhythm.DefaultBeatsPerBar,
		},
		Output: OutputConfig{
			Enabled:     true,
			OLAAddress:  DefaultOLAAddress,
			FPS:         DefaultOutputFPS,
			SendTick:    DefaultSendTick,
			FlashDecay:  DefaultFlashDecay,
			Easing:      effect.DefaultCurve,
			AccentColor: DefaultAccentColor,
			BeatColor:   DefaultBeatColor,
		},
		Logging:         LoggingConfig{Level: DefaultLogLevel},
		Remote:          RemoteConfig{Address: DefaultOSCAddress},
		Profiles:        initializeFixtureProfiles(),
		PatchedFixtures: PatchFixtures(),
	}
}

// LoadFile reads a YAML file over the defaults and validates the result.
func LoadFile(path string) (*PulseConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Fields missing from data
// keep their defaults; a fixtures list replaces the default patch.
func Parse(data []byte) (*PulseConfig, error) {
	cfg := NewPulseConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.WithStackTrace(fmt.Errorf("parse config: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return cfg, nil
}

// Validate checks ranges and cross references.
func (c *PulseConfig) Validate() error {
	r := c.Rhythm
	if r.MinBPM <= 0 || r.MaxBPM <= 0 {
		return fmt.Errorf("rhythm: tempo bounds must be positive, got [%v, %v]", r.MinBPM, r.MaxBPM)
	}
	if r.MinBPM > r.MaxBPM {
		return fmt.Errorf("rhythm: min_bpm %v is above max_bpm %v", r.MinBPM, r.MaxBPM)
	}
	if r.DefaultBPM < r.MinBPM || r.DefaultBPM > r.MaxBPM {
		return fmt.Errorf("rhythm: default_bpm %v outside [%v, %v]", r.DefaultBPM, r.MinBPM, r.MaxBPM)
	}
	if r.MaxTapInterval <= 0 {
		return fmt.Errorf("rhythm: max_tap_interval must be positive, got %v", r.MaxTapInterval)
	}
	if r.MinTapAmount < 2 {
		return fmt.Errorf("rhythm: min_tap_amount must be at least 2, got %d", r.MinTapAmount)
	}
	if r.DefaultVolume <= 0 || r.DefaultVolume > 1 {
		return fmt.Errorf("rhythm: default_volume must be in (0, 1], got %v", r.DefaultVolume)
	}

	// initial values are clamped by the metronome, only reject what cannot be a number
	if math.IsNaN(c.Initial.Tempo) || math.IsNaN(c.Initial.Volume) {
		return fmt.Errorf("initial: tempo and volume must be numbers")
	}

	o := c.Output
	if o.FPS < 1 || o.FPS > MaxOutputFPS {
		return fmt.Errorf("output: fps must be in [1, %d], got %d", MaxOutputFPS, o.FPS)
	}
	if o.SendTick <= 0 {
		return fmt.Errorf("output: send_tick must be positive, got %v", o.SendTick)
	}
	if o.FlashDecay <= 0 || o.FlashDecay > 1 {
		return fmt.Errorf("output: flash_decay must be in (0, 1], got %v", o.FlashDecay)
	}
	if _, err := effect.Curve(o.Easing); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if o.Enabled && o.OLAAddress == "" {
		return fmt.Errorf("output: ola_address is required when output is enabled")
	}

	if c.Remote.Enabled && c.Remote.Address == "" {
		return fmt.Errorf("remote: address is required when the remote is enabled")
	}

	for name, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profiles: %s: %w", name, err)
		}
	}

	seen := make(map[string]bool, len(c.PatchedFixtures))
	for _, pf := range c.PatchedFixtures {
		if pf.Name == "" {
			return fmt.Errorf("fixtures: fixture at address %d has no name", pf.Address)
		}
		if seen[pf.Name] {
			return fmt.Errorf("fixtures: duplicate fixture name %q", pf.Name)
		}
		seen[pf.Name] = true

		p, ok := c.Profiles[pf.Profile]
		if !ok {
			return fmt.Errorf("fixtures: %s uses unknown profile %q", pf.Name, pf.Profile)
		}
		if pf.Address < 1 || pf.Address+p.Footprint()-1 > 512 {
			return fmt.Errorf("fixtures: %s at address %d does not fit in a universe", pf.Name, pf.Address)
		}
	}

	return nil
}
