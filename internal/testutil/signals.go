package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicPCMSine generates a sine wave truncated to int32 samples.
func DeterministicPCMSine(freqHz, sampleRate, amplitude float64, length int) []int32 {
	f := DeterministicSine(freqHz, sampleRate, amplitude, length)
	out := make([]int32, length)
	for i, v := range f {
		out[i] = int32(v)
	}
	return out
}

// DeterministicPCMNoise generates white noise in [-amplitude, amplitude] with
// a fixed seed for reproducibility.
func DeterministicPCMNoise(seed int64, amplitude int32, length int) []int32 {
	out := make([]int32, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = int32((rng.Float64()*2 - 1) * float64(amplitude))
	}
	return out
}

// PCMImpulse generates a single sample of the given amplitude at pos.
func PCMImpulse(length, pos int, amplitude int32) []int32 {
	out := make([]int32, length)
	if pos >= 0 && pos < length {
		out[pos] = amplitude
	}
	return out
}

// PCMDC generates a constant-valued signal.
func PCMDC(value int32, length int) []int32 {
	out := make([]int32, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// PCMRamp returns 0, 1, ..., length-1.
func PCMRamp(length int) []int32 {
	out := make([]int32, length)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}
