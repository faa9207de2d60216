package rhythm

import (
	"math"
	"time"

	"github.com/robmorgan/pulse/utils"
)

// Tempo is a bpm value that always stays inside its bounds.
type Tempo struct {
	value float64
	min   float64
	max   float64
}

// NewTempo creates a Tempo bounded by [min, max] starting at initial (clamped).
func NewTempo(min, max, initial float64) *Tempo {
	if min > max {
		min, max = max, min
	}
	t := &Tempo{value: min, min: min, max: max}
	t.Set(initial)
	return t
}

// Set clamps v into the bounds, stores it and returns the stored value. NaN is ignored.
func (t *Tempo) Set(v float64) float64 {
	if math.IsNaN(v) {
		return t.value
	}
	t.value = utils.Clamp(v, t.min, t.max)
	return t.value
}

// Increment raises the tempo by one bpm. It is a no-op at the upper bound.
func (t *Tempo) Increment() float64 {
	return t.Set(t.value + 1)
}

// Decrement lowers the tempo by one bpm. It is a no-op at the lower bound.
func (t *Tempo) Decrement() float64 {
	return t.Set(t.value - 1)
}

// AdjustBy moves the tempo by a (possibly fractional) delta, as produced by drag gestures.
func (t *Tempo) AdjustBy(delta float64) float64 {
	return t.Set(t.value + delta)
}

// Contains reports whether v is a tempo the bounds accept unchanged.
func (t *Tempo) Contains(v float64) bool {
	return v >= t.min && v <= t.max
}

func (t *Tempo) Value() float64 { return t.value }
func (t *Tempo) Min() float64   { return t.min }
func (t *Tempo) Max() float64   { return t.max }

// Interval returns how long a single beat lasts at the current tempo.
func (t *Tempo) Interval() time.Duration {
	return beatsToDuration(1, t.value)
}

// beatsToDuration calculates how long the given number of beats lasts at tempo.
func beatsToDuration(beats int, tempo float64) time.Duration {
	if tempo <= 0 {
		return 0
	}
	return time.Duration(float64(time.Minute) / tempo * float64(beats))
}
