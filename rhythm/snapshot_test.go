package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot(t *testing.T) {
	t.Parallel()

	s := Snapshot{Tempo: 128, MinTempo: 30, MaxTempo: 500, BeatsPerBar: 3, CurrentBeat: 1, Playing: true}

	assert.Equal(t, 468750*time.Microsecond, s.BeatInterval())
	assert.Equal(t, 3*468750*time.Microsecond, s.BarInterval())
	assert.True(t, s.IsDownBeat())
	assert.False(t, s.AtMinTempo())
	assert.False(t, s.AtMaxTempo())
	assert.Equal(t, "1/3", s.GetMarker())
	assert.Equal(t, Loop{Tempo: 128, BeatsPerBar: 3, AccentFirstBeat: true}, s.Loop())
	assert.Equal(t, s.BarInterval(), s.Loop().BarInterval())
}
