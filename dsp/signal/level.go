package signal

import (
	"math"

	"github.com/ozpv/ringverb/dsp/core"
)

// Peak returns the largest absolute sample value.
func Peak(data []int32) int64 {
	var peak int64
	for _, v := range data {
		a := int64(v)
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return peak
}

// RMS returns the root-mean-square sample value, or 0 for empty input.
func RMS(data []int32) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		x := float64(v)
		sum += x * x
	}
	return math.Sqrt(sum / float64(len(data)))
}

// Mix blends dry and wet as dry*(1-mix) + wet*mix with mix in [0, 1]. The
// result has the length of the longer input; the shorter is treated as
// zero-padded. Samples are truncated toward zero.
func Mix(dry, wet []int32, mix float64) []int32 {
	n := max(len(dry), len(wet))
	out := make([]int32, n)
	for i := range out {
		var d, w float64
		if i < len(dry) {
			d = float64(dry[i])
		}
		if i < len(wet) {
			w = float64(wet[i])
		}
		out[i] = core.TruncateSample(d*(1-mix) + w*mix)
	}
	return out
}
