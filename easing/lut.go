package easing

import (
	"math"
)

// GenerateLut samples an easing into a look-up table of length values spread
// evenly over [0, 1].
func GenerateLut(f Func, length int) []float64 {
	if length < 2 {
		length = 2
	}
	increment := 1.0 / float64(length-1)
	lut := make([]float64, length)
	for i := 0; i < length; i++ {
		lut[i] = f(float64(i) * increment)
	}
	return lut
}

// Lookup returns an easing that linearly interpolates a look-up table.
func Lookup(lut []float64) Func {
	last := len(lut) - 1
	return func(x float64) float64 {
		if x <= 0 {
			return lut[0]
		}
		if x >= 1 {
			return lut[last]
		}
		p := x * float64(last)
		i := int(math.Floor(p))
		return lut[i] + (lut[i+1]-lut[i])*(p-float64(i))
	}
}

// Compile trades accuracy for speed on expensive easings such as Bezier.
func Compile(f Func, samples int) Func {
	return Lookup(GenerateLut(f, samples))
}
