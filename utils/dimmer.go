package utils

import "math"

// LevelToDMX converts a unit level into an 8-bit DMX channel value.
func LevelToDMX(level float64) byte {
	if math.IsNaN(level) {
		return 0
	}
	return byte(math.Round(Clamp(level, 0, 1) * 255))
}

// ScaleDMX scales a channel value by a unit level.
func ScaleDMX(value byte, level float64) byte {
	return LevelToDMX(float64(value) / 255 * level)
}
