package rhythm

import (
	"sync"
	"time"

	"github.com/robmorgan/pulse/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Player produces the audible (or visible) beat. It receives a new Loop whenever the tempo or
// bar length changes and is expected to call Metronome.OnTick (or OnLoopTick with the loop's
// Generation) once per beat, in order.
type Player interface {
	// Apply reconfigures a running or idle loop without restarting it.
	Apply(loop Loop)

	// Start begins playback of loop from its first beat, restarting if already playing.
	Start(loop Loop)

	// Stop silences playback.
	Stop()

	// SetVolume sets the output level in [0,1].
	SetVolume(level float64)
}

// Listener receives snapshots from the metronome. Listeners are called synchronously and
// must not call back into the metronome.
type Listener func(Snapshot)

type command func(p Player)

// Metronome owns the tempo, tap, beat and volume state and is the single entry point for the
// UI and the player. All methods are safe for concurrent use.
type Metronome struct {
	// mu guards the state below. emitMu orders player commands and change notifications
	// without holding mu, so a player may call OnTick from inside Start.
	mu     sync.Mutex
	emitMu sync.Mutex

	settings Settings
	clock    clock.PassiveClock
	player   Player

	tempo  *Tempo
	taps   *TapTempo
	cycle  *BeatCycle
	volume *Volume

	// generation counts restarts, see Loop.Generation.
	generation uint64

	changeListeners []Listener
	beatListeners   []Listener
}

// NewMetronome creates a stopped Metronome at the default tempo, volume and a 4 beat bar.
// A nil player discards commands and a nil clock falls back to the real clock.
func NewMetronome(settings Settings, player Player, clk clock.PassiveClock) *Metronome {
	settings = settings.normalized()
	if player == nil {
		player = nopPlayer{}
	}
	if clk == nil {
		clk = clock.RealClock{}
	}

	return &Metronome{
		settings: settings,
		clock:    clk,
		player:   player,
		tempo:    NewTempo(settings.MinBPM, settings.MaxBPM, settings.DefaultBPM),
		taps:     NewTapTempo(settings.MaxTapInterval, settings.MinTapAmount),
		cycle:    NewBeatCycle(DefaultBeatsPerBar),
		volume:   NewVolume(settings.DefaultVolume, settings.DefaultVolume),
	}
}

// Settings returns the normalized settings the metronome was built with.
func (m *Metronome) Settings() Settings {
	return m.settings
}

// OnChange registers a listener called after every operation that changed the snapshot,
// except beat ticks.
func (m *Metronome) OnChange(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.changeListeners = append(m.changeListeners, fn)
}

// OnBeat registers a listener called after every tick that advanced the beat.
func (m *Metronome) OnBeat(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beatListeners = append(m.beatListeners, fn)
}

// Snapshot returns the current state.
func (m *Metronome) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// BeatInterval returns how long a beat lasts at the current tempo.
func (m *Metronome) BeatInterval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tempo.Interval()
}

// Configure applies initial values, typically the ones loaded by the persistence layer.
func (m *Metronome) Configure(tempo, volume float64, beatsPerBar int) Snapshot {
	return m.update("configure", func() []command {
		m.tempo.Set(tempo)
		m.volume.SetLevel(volume)
		m.cycle.SetBeatsPerBar(beatsPerBar)
		m.taps.Reset()

		level := m.volume.Level()
		cmds := []command{
			func(p Player) { p.SetVolume(level) },
		}
		if m.cycle.Playing() {
			return append(cmds, m.restartLocked()...)
		}
		loop := m.loopLocked()
		return append(cmds, func(p Player) { p.Apply(loop) })
	})
}

// ApplyTempo sets the tempo to bpm, clamped into the configured bounds.
func (m *Metronome) ApplyTempo(bpm float64) Snapshot {
	return m.update("apply tempo", func() []command {
		return m.setTempoLocked(func() { m.tempo.Set(bpm) })
	})
}

// AdjustTempo moves the tempo by delta bpm.
func (m *Metronome) AdjustTempo(delta float64) Snapshot {
	return m.update("adjust tempo", func() []command {
		return m.setTempoLocked(func() { m.tempo.AdjustBy(delta) })
	})
}

// IncrementTempo raises the tempo by one bpm.
func (m *Metronome) IncrementTempo() Snapshot {
	return m.update("increment tempo", func() []command {
		return m.setTempoLocked(func() { m.tempo.Increment() })
	})
}

// DecrementTempo lowers the tempo by one bpm.
func (m *Metronome) DecrementTempo() Snapshot {
	return m.update("decrement tempo", func() []command {
		return m.setTempoLocked(func() { m.tempo.Decrement() })
	})
}

// ResetTempo returns to the default tempo.
func (m *Metronome) ResetTempo() Snapshot {
	return m.update("reset tempo", func() []command {
		return m.setTempoLocked(func() { m.tempo.Set(m.settings.DefaultBPM) })
	})
}

// Tap registers a tap gesture at the current clock time.
func (m *Metronome) Tap() Snapshot {
	return m.ApplyTapGesture(m.clock.Now())
}

// ApplyTapGesture registers a tap at now. Once enough recent taps have been seen the tempo
// follows their average spacing; estimates outside the tempo bounds are dropped.
func (m *Metronome) ApplyTapGesture(now time.Time) Snapshot {
	return m.update("tap", func() []command {
		bpm, ok := m.taps.Register(now)
		if !ok {
			return nil
		}
		if !m.tempo.Contains(bpm) {
			logger.GetProjectLogger().WithFields(logrus.Fields{"estimate": bpm, "taps": m.taps.Len()}).
				Debug("Discarding tap tempo estimate outside the tempo bounds")
			return nil
		}
		return m.setTempoLocked(func() { m.tempo.Set(bpm) })
	})
}

// SetBeatsPerBar changes the bar length (clamped to [1,8]) and rewinds to beat 0. A playing
// loop restarts from its first beat straight away.
func (m *Metronome) SetBeatsPerBar(n int) Snapshot {
	return m.update("set beats per bar", func() []command {
		m.cycle.SetBeatsPerBar(n)
		if m.cycle.Playing() {
			return m.restartLocked()
		}
		loop := m.loopLocked()
		return []command{func(p Player) { p.Apply(loop) }}
	})
}

// OnTick advances the beat. The player calls it once per sounded beat; it does nothing
// while stopped.
func (m *Metronome) OnTick() Snapshot {
	return m.tick(nil)
}

// OnLoopTick is OnTick for a player that passes the Loop.Generation it is playing. Ticks from a
// loop that has been restarted since are dropped, so a beat that was already due when the bar
// changed cannot advance the new bar.
func (m *Metronome) OnLoopTick(generation uint64) Snapshot {
	return m.tick(&generation)
}

func (m *Metronome) tick(generation *uint64) Snapshot {
	m.mu.Lock()
	ok := false
	if generation == nil || *generation == m.generation {
		_, ok = m.cycle.Tick()
	} else {
		logger.GetProjectLogger().WithFields(logrus.Fields{"tick": *generation, "loop": m.generation}).
			Debug("Dropping tick from a replaced loop")
	}
	snapshot := m.snapshotLocked()
	listeners := m.beatListeners
	m.mu.Unlock()

	if ok {
		for _, fn := range listeners {
			fn(snapshot)
		}
	}
	return snapshot
}

// Start begins playback from beat 0. It is a no-op if already playing.
func (m *Metronome) Start() Snapshot {
	return m.update("start", func() []command {
		return m.startLocked()
	})
}

// Stop halts playback. Ticks are ignored from here on until Start.
func (m *Metronome) Stop() Snapshot {
	return m.update("stop", func() []command {
		return m.stopLocked()
	})
}

// Toggle starts a stopped metronome or stops a playing one.
func (m *Metronome) Toggle() Snapshot {
	return m.update("toggle", func() []command {
		if m.cycle.Playing() {
			return m.stopLocked()
		}
		return m.startLocked()
	})
}

// SetVolume sets the output level, clamped into [0,1]. Zero mutes.
func (m *Metronome) SetVolume(level float64) Snapshot {
	return m.update("set volume", func() []command {
		return m.setVolumeLocked(func() { m.volume.SetLevel(level) })
	})
}

// ToggleMute mutes or restores the last non-zero level.
func (m *Metronome) ToggleMute() Snapshot {
	return m.update("toggle mute", func() []command {
		return m.setVolumeLocked(m.volume.ToggleMute)
	})
}

// SetMaxVolume toggles between full volume and the last remembered level.
func (m *Metronome) SetMaxVolume() Snapshot {
	return m.update("set max volume", func() []command {
		return m.setVolumeLocked(m.volume.SetMax)
	})
}

// ResetVolume returns to the default level.
func (m *Metronome) ResetVolume() Snapshot {
	return m.update("reset volume", func() []command {
		return m.setVolumeLocked(m.volume.Reset)
	})
}

// update runs fn under the state lock, then sends the resulting commands to the player and
// notifies change listeners if the snapshot moved.
func (m *Metronome) update(op string, fn func() []command) Snapshot {
	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()
	before := m.snapshotLocked()
	cmds := fn()
	after := m.snapshotLocked()
	listeners := m.changeListeners
	m.mu.Unlock()

	for _, cmd := range cmds {
		cmd(m.player)
	}

	if before != after {
		logger.GetProjectLogger().WithFields(logrus.Fields{
			"op":            op,
			"tempo":         after.Tempo,
			"beats_per_bar": after.BeatsPerBar,
			"playing":       after.Playing,
			"volume":        after.Volume,
			"muted":         after.Muted,
		}).Debug("Metronome updated")

		for _, listener := range listeners {
			listener(after)
		}
	}

	return after
}

func (m *Metronome) setTempoLocked(set func()) []command {
	prev := m.tempo.Value()
	set()
	if m.tempo.Value() == prev {
		return nil
	}
	loop := m.loopLocked()
	return []command{func(p Player) { p.Apply(loop) }}
}

func (m *Metronome) setVolumeLocked(set func()) []command {
	prev := m.volume.Level()
	set()
	level := m.volume.Level()
	if level == prev {
		return nil
	}
	return []command{func(p Player) { p.SetVolume(level) }}
}

func (m *Metronome) startLocked() []command {
	if m.cycle.Playing() {
		return nil
	}
	m.cycle.Start()
	return m.restartLocked()
}

// restartLocked begins a new loop generation and asks the player to play it from beat 0.
func (m *Metronome) restartLocked() []command {
	m.generation++
	loop := m.loopLocked()
	return []command{func(p Player) { p.Start(loop) }}
}

func (m *Metronome) stopLocked() []command {
	if !m.cycle.Playing() {
		return nil
	}
	m.cycle.Stop()
	return []command{func(p Player) { p.Stop() }}
}

func (m *Metronome) loopLocked() Loop {
	loop := m.cycle.Loop(m.tempo.Value())
	loop.Generation = m.generation
	return loop
}

func (m *Metronome) snapshotLocked() Snapshot {
	return Snapshot{
		Tempo:       m.tempo.Value(),
		MinTempo:    m.tempo.Min(),
		MaxTempo:    m.tempo.Max(),
		BeatsPerBar: m.cycle.BeatsPerBar(),
		CurrentBeat: m.cycle.Current(),
		Playing:     m.cycle.Playing(),
		Volume:      m.volume.Level(),
		Muted:       m.volume.Muted(),
	}
}

type nopPlayer struct{}

func (nopPlayer) Apply(Loop)        {}
func (nopPlayer) Start(Loop)        {}
func (nopPlayer) Stop()             {}
func (nopPlayer) SetVolume(float64) {}
