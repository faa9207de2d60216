package rhythm

import (
	"math"
	"time"

	"golang.org/x/exp/slices"
)

// TapTempo estimates a tempo from the spacing of recent taps. Only taps inside a sliding
// window are kept, so a long pause starts a new estimate.
type TapTempo struct {
	taps        []time.Time
	maxInterval time.Duration
	minTaps     int
}

// NewTapTempo creates an estimator that forgets taps older than maxInterval and needs at
// least minTaps taps inside the window before it produces an estimate.
func NewTapTempo(maxInterval time.Duration, minTaps int) *TapTempo {
	if maxInterval <= 0 {
		maxInterval = DefaultMaxTapInterval
	}
	if minTaps <= 0 {
		minTaps = DefaultMinTapAmount
	} else if minTaps < minTapAmount {
		minTaps = minTapAmount
	}
	return &TapTempo{
		taps:        make([]time.Time, 0, minTaps+1),
		maxInterval: maxInterval,
		minTaps:     minTaps,
	}
}

// Register records a tap at now and returns the averaged bpm of the taps still inside the
// window. ok is false until enough taps have been seen.
func (tt *TapTempo) Register(now time.Time) (bpm float64, ok bool) {
	tt.taps = append(tt.taps, now)

	kept := tt.taps[:0]
	for _, t := range tt.taps {
		if now.Sub(t) < tt.maxInterval {
			kept = append(kept, t)
		}
	}
	tt.taps = kept

	if len(tt.taps) < tt.minTaps {
		return 0, false
	}

	var total time.Duration
	for i := 1; i < len(tt.taps); i++ {
		total += tt.taps[i].Sub(tt.taps[i-1])
	}
	avg := total.Seconds() / float64(len(tt.taps)-1)
	if avg == 0 {
		return 0, false
	}

	// taps registered out of order give a negative average
	return math.Abs(60 / avg), true
}

// Reset forgets every tap.
func (tt *TapTempo) Reset() {
	tt.taps = tt.taps[:0]
}

// Len returns the number of taps inside the window as of the last Register call.
func (tt *TapTempo) Len() int {
	return len(tt.taps)
}

// Taps returns a copy of the retained tap timestamps.
func (tt *TapTempo) Taps() []time.Time {
	return slices.Clone(tt.taps)
}
