package rhythm

import "github.com/robmorgan/pulse/utils"

// BeatCycle counts beats through a bar. Beat 0 means no beat has sounded since the cycle
// was started, stopped or resized; while playing the counter runs 1..beatsPerBar and wraps.
type BeatCycle struct {
	beatsPerBar int
	current     int
	playing     bool
}

// NewBeatCycle creates a stopped cycle of n beats per bar (clamped to [1,8]).
func NewBeatCycle(n int) *BeatCycle {
	c := &BeatCycle{}
	c.SetBeatsPerBar(n)
	return c
}

// Start begins playing from beat 0. The first tick produces beat 1.
func (c *BeatCycle) Start() {
	c.current = 0
	c.playing = true
}

// Stop halts the cycle and clears the active beat immediately.
func (c *BeatCycle) Stop() {
	c.current = 0
	c.playing = false
}

// Tick advances to the next beat and returns it. It does nothing while stopped.
func (c *BeatCycle) Tick() (beat int, ok bool) {
	if !c.playing {
		return 0, false
	}
	if c.current >= c.beatsPerBar {
		c.current = 0
	}
	c.current++
	return c.current, true
}

// SetBeatsPerBar changes the bar length and rewinds to beat 0. It returns the clamped length.
func (c *BeatCycle) SetBeatsPerBar(n int) int {
	c.beatsPerBar = utils.Clamp(n, MinBeatsPerBar, MaxBeatsPerBar)
	c.current = 0
	return c.beatsPerBar
}

func (c *BeatCycle) BeatsPerBar() int { return c.beatsPerBar }
func (c *BeatCycle) Current() int     { return c.current }
func (c *BeatCycle) Playing() bool    { return c.playing }

// Loop describes the beat loop a player must build for this cycle at the given tempo.
func (c *BeatCycle) Loop(tempo float64) Loop {
	return Loop{
		Tempo:           tempo,
		BeatsPerBar:     c.beatsPerBar,
		AccentFirstBeat: true,
	}
}
