package rhythm

import (
	"fmt"
	"time"
)

// Snapshot is a copy of the metronome's public state at one point in time. Every metronome
// operation returns one so callers can redraw without reading state back.
type Snapshot struct {
	// Tempo is the current tempo in bpm.
	Tempo float64

	// MinTempo and MaxTempo are the tempo bounds.
	MinTempo float64
	MaxTempo float64

	// BeatsPerBar is the bar length in beats.
	BeatsPerBar int

	// CurrentBeat is the active beat within the bar, or 0 when none has sounded yet.
	CurrentBeat int

	// Playing is true between Start and Stop.
	Playing bool

	// Volume is the output level in [0,1].
	Volume float64

	// Muted is true when Volume is zero.
	Muted bool
}

// BeatInterval gets the length of one beat at the snapshot's tempo.
func (s Snapshot) BeatInterval() time.Duration {
	return beatsToDuration(1, s.Tempo)
}

// BarInterval gets the length of one bar at the snapshot's tempo.
func (s Snapshot) BarInterval() time.Duration {
	return beatsToDuration(s.BeatsPerBar, s.Tempo)
}

// IsDownBeat checks whether the active beat is the first beat in its bar.
func (s Snapshot) IsDownBeat() bool {
	return s.CurrentBeat == 1
}

// AtMinTempo reports whether the tempo cannot be lowered any further.
func (s Snapshot) AtMinTempo() bool {
	return s.Tempo <= s.MinTempo
}

// AtMaxTempo reports whether the tempo cannot be raised any further.
func (s Snapshot) AtMaxTempo() bool {
	return s.Tempo >= s.MaxTempo
}

// Loop returns the loop descriptor matching the snapshot.
func (s Snapshot) Loop() Loop {
	return Loop{Tempo: s.Tempo, BeatsPerBar: s.BeatsPerBar, AccentFirstBeat: true}
}

// GetMarker returns the position as "beat/beatsPerBar".
func (s Snapshot) GetMarker() string {
	return fmt.Sprintf("%d/%d", s.CurrentBeat, s.BeatsPerBar)
}
