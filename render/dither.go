package render

import (
	"math"
)

// Source yields uniform values in [0, 1)
// vmath.FastRand satisfies it; tests substitute fixed sources
type Source interface {
	Float64() float64
}

// Dither rounds value after a uniform offset in [-0.5, 0.5) and clamps to [0, count)
// Every call draws a fresh offset, so x and y of one sample are dithered independently
func Dither(value float64, count int, src Source) int {
	if count <= 0 {
		return 0
	}
	r := math.Round(value + src.Float64() - 0.5)
	if !(r >= 0) {
		// Negative and NaN
		return 0
	}
	if r >= float64(count) {
		return count - 1
	}
	return int(r)
}
