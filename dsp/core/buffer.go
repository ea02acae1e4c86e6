package core

// PadZeros returns a copy of src followed by n zero-valued samples.
// A non-positive n yields a plain copy.
func PadZeros(src []int32, n int) []int32 {
	if n < 0 {
		n = 0
	}
	out := make([]int32, len(src)+n)
	copy(out, src)
	return out
}

// ToFloat converts PCM samples to float64 without scaling.
func ToFloat(src []int32) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}
	return out
}
