package core

import "math"

// TwoPi is one full oscillator cycle in radians.
const TwoPi = 2 * math.Pi

// WrapPhase maps phase into [0, 2π) using a Euclidean remainder, so negative
// increments never produce a negative phase.
func WrapPhase(phase float64) float64 {
	r := math.Mod(phase, TwoPi)
	if r < 0 {
		r += TwoPi
	}

	// r+2π can round up to exactly 2π for tiny negative remainders.
	if r >= TwoPi {
		r = 0
	}

	return r
}

// TruncateSample converts a floating-point sample to int32 by truncating
// toward zero. Values outside the int32 range saturate and NaN maps to 0.
func TruncateSample(x float64) int32 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	}

	return int32(x)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
