package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/pulse/logger"
	"github.com/robmorgan/pulse/player"
	"k8s.io/utils/clock"
)

// Flasher turns beats into light: every beat flashes the group, the accented beat in its own
// color, and the flash fades out over a fraction of the beat interval.
type Flasher struct {
	group *Group
	state *DMXState

	accent colorful.Color
	color  colorful.Color

	// Decay is the fraction of the beat interval a flash takes to fade out.
	Decay float64

	// Easing shapes the fade. It maps fade progress in [0,1] to how much light is gone.
	Easing ease.Function

	mu      sync.Mutex
	last    player.Beat
	flashed bool
}

// NewFlasher creates a Flasher writing to state. Colors are hex strings such as "#FF0000".
func NewFlasher(state *DMXState, group *Group, accentHex, beatHex string, decay float64) (*Flasher, error) {
	accent, err := colorful.Hex(accentHex)
	if err != nil {
		return nil, fmt.Errorf("invalid accent color %q: %w", accentHex, err)
	}
	color, err := colorful.Hex(beatHex)
	if err != nil {
		return nil, fmt.Errorf("invalid beat color %q: %w", beatHex, err)
	}
	if decay <= 0 || decay > 1 {
		decay = 1
	}

	return &Flasher{
		group:  group,
		state:  state,
		accent: accent,
		color:  color,
		Decay:  decay,
		Easing: ease.InQuad,
	}, nil
}

// Flash starts a new flash for beat. It is meant to be registered as a player sink.
func (f *Flasher) Flash(beat player.Beat) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = beat
	f.flashed = true
}

// StateAt returns what the fixtures show at now.
func (f *Flasher) StateAt(now time.Time) State {
	f.mu.Lock()
	beat, flashed := f.last, f.flashed
	f.mu.Unlock()

	state := State{RGB: f.color}
	if !flashed {
		return state
	}
	if beat.Accent {
		state.RGB = f.accent
	}

	window := time.Duration(float64(beat.Interval) * f.Decay)
	elapsed := now.Sub(beat.At)
	if window <= 0 || elapsed < 0 || elapsed >= window {
		return state
	}

	progress := float64(elapsed) / float64(window)
	state.Intensity = beat.Level * (1 - f.Easing(progress))
	return state
}

// Render writes the state at now to every fixture in the group.
func (f *Flasher) Render(now time.Time) error {
	state := f.StateAt(now)

	ops := make([]dmxOperation, 0, f.group.Count()*5)
	for _, fixture := range f.group.Fixtures() {
		ops = append(ops, fixture.operations(state)...)
	}
	return f.state.set(ops...)
}

// RenderWorker renders fps frames per second until ctx is done.
func (f *Flasher) RenderWorker(ctx context.Context, clk clock.Clock, fps int, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := logger.GetProjectLogger()
	if fps <= 0 {
		fps = 1
	}
	tick := time.Second / time.Duration(fps)

	t := clk.NewTimer(tick)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("RenderWorker shutdown")
			return
		case <-t.C():
			if err := f.Render(clk.Now()); err != nil {
				logger.Errorf("error rendering beat flash: %v", err)
			}
			t.Reset(tick)
		}
	}
}
