package utils

import "golang.org/x/exp/constraints"

// Clamp bounds t to the interval [min, max]. The bounds are swapped if given in reverse order.
func Clamp[T constraints.Ordered](t, min, max T) T {
	if min > max {
		min, max = max, min
	}
	if t < min {
		return min
	}
	if t > max {
		return max
	}
	return t
}
