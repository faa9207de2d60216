package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func at(seconds float64) time.Time {
	return epoch.Add(time.Duration(seconds * float64(time.Second)))
}

func TestTapTempoEvenSpacing(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		spacing float64
		taps    int
		bpm     float64
	}{
		{0.5, 3, 120},
		{0.25, 3, 240},
		{0.75, 3, 80},
		{0.2, 6, 300},
		{0.9, 3, 60.0 / 0.9},
	}

	for _, testCase := range testCases {
		tt := NewTapTempo(DefaultMaxTapInterval, DefaultMinTapAmount)

		var bpm float64
		var ok bool
		for i := 0; i < testCase.taps; i++ {
			bpm, ok = tt.Register(at(float64(i) * testCase.spacing))
			if i < DefaultMinTapAmount-1 {
				require.False(t, ok, "spacing=%v tap=%d", testCase.spacing, i)
			}
		}

		require.True(t, ok, "spacing=%v", testCase.spacing)
		assert.InDelta(t, testCase.bpm, bpm, 1e-6, "spacing=%v", testCase.spacing)
	}
}

func TestTapTempoDropsStaleTaps(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(DefaultMaxTapInterval, DefaultMinTapAmount)

	for _, s := range []float64{0, 0.5, 3.0, 3.5} {
		_, ok := tt.Register(at(s))
		require.False(t, ok)
	}
	assert.Equal(t, 2, tt.Len())

	bpm, ok := tt.Register(at(4.0))
	require.True(t, ok)
	assert.InDelta(t, 120.0, bpm, 1e-9)
	assert.Equal(t, []time.Time{at(3.0), at(3.5), at(4.0)}, tt.Taps())
}

func TestTapTempoWindowBoundaryIsExclusive(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(2*time.Second, 3)
	tt.Register(at(0))
	tt.Register(at(1))
	_, ok := tt.Register(at(2))

	// the first tap is exactly maxInterval old and is evicted
	assert.False(t, ok)
	assert.Equal(t, 2, tt.Len())
}

func TestTapTempoAveragesJitter(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(DefaultMaxTapInterval, DefaultMinTapAmount)
	tt.Register(at(0))
	tt.Register(at(0.45))
	bpm, ok := tt.Register(at(1.0))

	require.True(t, ok)
	assert.InDelta(t, 120.0, bpm, 1e-9)
}

func TestTapTempoOutOfOrder(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(DefaultMaxTapInterval, DefaultMinTapAmount)
	tt.Register(at(1.0))
	tt.Register(at(0.5))
	bpm, ok := tt.Register(at(0))

	require.True(t, ok)
	assert.InDelta(t, 120.0, bpm, 1e-9)
}

func TestTapTempoIdenticalTimestamps(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(DefaultMaxTapInterval, DefaultMinTapAmount)
	for i := 0; i < 3; i++ {
		_, ok := tt.Register(at(1))
		assert.False(t, ok)
	}
}

func TestTapTempoMinimumTaps(t *testing.T) {
	t.Parallel()

	// a single tap has no interval, so two is the floor
	tt := NewTapTempo(DefaultMaxTapInterval, 1)
	_, ok := tt.Register(at(0))
	assert.False(t, ok)
	bpm, ok := tt.Register(at(0.5))
	assert.True(t, ok)
	assert.InDelta(t, 120, bpm, 1e-9)

	// unset means the default
	tt = NewTapTempo(DefaultMaxTapInterval, 0)
	tt.Register(at(0))
	_, ok = tt.Register(at(0.5))
	assert.False(t, ok)
	_, ok = tt.Register(at(1.0))
	assert.True(t, ok)
}

func TestTapTempoReset(t *testing.T) {
	t.Parallel()

	tt := NewTapTempo(0, 0)
	tt.Register(at(0))
	tt.Register(at(0.5))
	tt.Reset()
	assert.Equal(t, 0, tt.Len())

	_, ok := tt.Register(at(1.0))
	assert.False(t, ok)
}
