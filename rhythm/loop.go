package rhythm

import "time"

// Loop is the beat loop a Player is asked to build: BeatsPerBar beats at Tempo bpm, the first
// one accented when AccentFirstBeat is set.
type Loop struct {
	Tempo           float64
	BeatsPerBar     int
	AccentFirstBeat bool

	// Generation changes every time playback (re)starts. A player tags its ticks with it so
	// a tick scheduled for a replaced loop can be told apart.
	Generation uint64
}

// Interval returns the time between two beats of the loop.
func (l Loop) Interval() time.Duration {
	return beatsToDuration(1, l.Tempo)
}

// BarInterval returns the length of one full bar.
func (l Loop) BarInterval() time.Duration {
	return beatsToDuration(l.BeatsPerBar, l.Tempo)
}

// IsAccent reports whether the given 1-based beat is accented.
func (l Loop) IsAccent(beat int) bool {
	return l.AccentFirstBeat && beat == 1
}

// Pattern returns one entry per beat, true where the beat is accented.
func (l Loop) Pattern() []bool {
	if l.BeatsPerBar <= 0 {
		return nil
	}
	out := make([]bool, l.BeatsPerBar)
	for i := range out {
		out[i] = l.IsAccent(i + 1)
	}
	return out
}
