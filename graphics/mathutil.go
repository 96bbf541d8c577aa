// mathutil.go - Small float32 helpers used by scissor generation

package graphics

import "math"

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceilf(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
