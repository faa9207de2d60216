package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelToDMX(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    float64
		expected byte
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{-0.2, 0},
		{1.7, 255},
		{math.NaN(), 0},
	}

	for _, testCase := range testCases {
		require.Equal(t, testCase.expected, LevelToDMX(testCase.level), "level=%v", testCase.level)
	}
}

func TestScaleDMX(t *testing.T) {
	t.Parallel()

	require.Equal(t, byte(255), ScaleDMX(255, 1))
	require.Equal(t, byte(0), ScaleDMX(255, 0))
	require.Equal(t, byte(100), ScaleDMX(200, 0.5))
}
