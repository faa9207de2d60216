package rhythm

import (
	"math"

	"github.com/robmorgan/pulse/utils"
)

const maxVolume = 1.0

// Volume tracks the output level and mute state. Muted always means a level of zero, and the
// last level strictly between 0 and 1 is remembered so unmuting can restore it.
type Volume struct {
	level       float64
	muted       bool
	lastNonZero float64
	defaultLvl  float64
}

// NewVolume creates a Volume at initial. defaultLevel seeds the remembered level and is
// what Reset returns to.
func NewVolume(initial, defaultLevel float64) *Volume {
	if !(defaultLevel > 0 && defaultLevel <= maxVolume) {
		defaultLevel = DefaultVolume
	}
	v := &Volume{lastNonZero: defaultLevel, defaultLvl: defaultLevel}
	v.SetLevel(initial)
	return v
}

// SetLevel clamps l into [0,1] and applies it. A level of zero mutes.
func (v *Volume) SetLevel(l float64) {
	if math.IsNaN(l) {
		return
	}
	l = utils.Clamp(l, 0, maxVolume)
	if l > 0 && l < maxVolume {
		v.lastNonZero = l
	}
	v.level = l
	v.muted = l <= 0
}

// ToggleMute mutes, remembering the current level, or restores the remembered level.
func (v *Volume) ToggleMute() {
	if v.muted {
		v.level = v.lastNonZero
		v.muted = false
		return
	}
	if v.level > 0 {
		v.lastNonZero = v.level
	}
	v.level = 0
	v.muted = true
}

// SetMax jumps to full volume. When already at full volume it goes back to the remembered
// level instead. Either way the volume ends up unmuted.
func (v *Volume) SetMax() {
	if v.level >= maxVolume {
		v.level = v.lastNonZero
	} else {
		v.level = maxVolume
	}
	v.muted = false
}

// Reset returns to the default level.
func (v *Volume) Reset() {
	v.SetLevel(v.defaultLvl)
}

func (v *Volume) Level() float64       { return v.level }
func (v *Volume) Muted() bool          { return v.muted }
func (v *Volume) LastNonZero() float64 { return v.lastNonZero }
