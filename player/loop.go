package player

import (
	"context"
	"sync"
	"time"

	"github.com/robmorgan/pulse/logger"
	"github.com/robmorgan/pulse/rhythm"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// minInterval guards against a zero or negative beat interval spinning the loop.
const minInterval = time.Millisecond

// Beat is delivered to sinks each time the loop sounds a beat.
type Beat struct {
	// Number is the 1-based beat within the bar.
	Number      int
	BeatsPerBar int
	Accent      bool

	// Level is the output volume in [0,1]; 0 while muted.
	Level float64

	// At is when the beat sounded and Interval how long until the next one.
	At       time.Time
	Interval time.Duration
}

// TickFunc advances the beat counter for the loop generation being played, normally
// Metronome.OnLoopTick.
type TickFunc func(generation uint64) rhythm.Snapshot

// Loop is a clock driven player. Once started it sounds a beat immediately and then one every
// loop interval, asking its TickFunc for the beat position each time.
type Loop struct {
	clock clock.Clock
	wake  chan struct{}

	mu       sync.Mutex
	loop     rhythm.Loop
	playing  bool
	restart  bool
	level    float64
	beats    int
	handler  TickFunc
	sinks    []func(Beat)
	interval time.Duration
}

// NewLoop creates an idle Loop driven by clk.
func NewLoop(clk clock.Clock) *Loop {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Loop{
		clock:    clk,
		wake:     make(chan struct{}, 1),
		level:    rhythm.DefaultVolume,
		loop:     rhythm.Loop{Tempo: rhythm.DefaultBPM, BeatsPerBar: rhythm.DefaultBeatsPerBar, AccentFirstBeat: true},
		interval: rhythm.Loop{Tempo: rhythm.DefaultBPM}.Interval(),
	}
}

// Handle sets the function called on every beat to advance the beat counter.
func (l *Loop) Handle(fn TickFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = fn
}

// Sink registers fn to receive every sounded beat.
func (l *Loop) Sink(fn func(Beat)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, fn)
}

// Apply changes the loop. A new interval takes effect from the next beat on; only Start moves
// the loop to a new generation.
func (l *Loop) Apply(loop rhythm.Loop) {
	l.mu.Lock()
	defer l.mu.Unlock()
	loop.Generation = l.loop.Generation
	l.setLoopLocked(loop)
}

// Start plays loop from its first beat, restarting if already playing.
func (l *Loop) Start(loop rhythm.Loop) {
	l.mu.Lock()
	l.setLoopLocked(loop)
	l.playing = true
	l.restart = true
	l.mu.Unlock()

	l.notify()
}

// Stop silences the loop.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.playing = false
	l.restart = false
	l.mu.Unlock()

	l.notify()
}

// SetVolume sets the level attached to subsequent beats.
func (l *Loop) SetVolume(level float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Playing reports whether the loop is sounding beats.
func (l *Loop) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playing
}

// Beats returns how many beats the loop has sounded.
func (l *Loop) Beats() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.beats
}

// Run processes start, stop and beat timer events until ctx is done.
func (l *Loop) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	logger := logger.GetProjectLogger()
	logger.Info("Beat loop started")

	t := l.clock.NewTimer(time.Hour)
	stopTimer(t)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Beat loop shutdown")
			return
		case <-l.wake:
			l.mu.Lock()
			playing, restart, interval, generation := l.playing, l.restart, l.interval, l.loop.Generation
			l.restart = false
			l.mu.Unlock()

			stopTimer(t)
			if playing && restart {
				t.Reset(interval)
				l.fire(generation)
			}
		case <-t.C():
			l.mu.Lock()
			playing, interval, generation := l.playing, l.interval, l.loop.Generation
			l.mu.Unlock()

			if playing {
				t.Reset(interval)
				l.fire(generation)
			}
		}
	}
}

// fire advances the beat and hands it to the sinks. A fire scheduled for a loop that has been
// restarted since is dropped; the restart sounds its own first beat.
func (l *Loop) fire(generation uint64) {
	l.mu.Lock()
	if generation != l.loop.Generation {
		l.mu.Unlock()
		return
	}
	handler := l.handler
	sinks := l.sinks
	level := l.level
	interval := l.interval
	l.mu.Unlock()

	if handler == nil {
		return
	}

	snapshot := handler(generation)
	if !snapshot.Playing || snapshot.CurrentBeat == 0 {
		// stopped or restarted between the timer firing and the tick
		return
	}

	beat := Beat{
		Number:      snapshot.CurrentBeat,
		BeatsPerBar: snapshot.BeatsPerBar,
		Accent:      snapshot.Loop().IsAccent(snapshot.CurrentBeat),
		Level:       level,
		At:          l.clock.Now(),
		Interval:    interval,
	}

	l.mu.Lock()
	l.beats++
	l.mu.Unlock()

	logger.GetProjectLogger().WithFields(logrus.Fields{"beat": beat.Number, "accent": beat.Accent, "level": beat.Level}).
		Debug("Beat")

	for _, sink := range sinks {
		sink(beat)
	}
}

func (l *Loop) setLoopLocked(loop rhythm.Loop) {
	l.loop = loop
	l.interval = loop.Interval()
	if l.interval < minInterval {
		l.interval = minInterval
	}
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// stopTimer stops t and drains a pending fire so a later Reset starts clean.
func stopTimer(t clock.Timer) {
	if !t.Stop() {
		select {
		case <-t.C():
		default:
		}
	}
}
