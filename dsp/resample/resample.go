package resample

import (
	"errors"
	"fmt"
)

// ErrDegenerateResample indicates a target rate of zero or one above the
// source rate.
var ErrDegenerateResample = errors.New("resample: degenerate target rate")

// Factor returns the decimation step floor(sampleRate/newSampleRate).
func Factor(sampleRate, newSampleRate uint32) (int, error) {
	if newSampleRate == 0 || newSampleRate > sampleRate {
		return 0, fmt.Errorf("%w: %d Hz to %d Hz", ErrDegenerateResample, sampleRate, newSampleRate)
	}
	return int(sampleRate / newSampleRate), nil
}

// DownsampleStrict decimates signal to newSampleRate, returning
// ErrDegenerateResample instead of an empty signal for invalid rates.
func DownsampleStrict(sampleRate uint32, signal []int32, newSampleRate uint32) ([]int32, error) {
	factor, err := Factor(sampleRate, newSampleRate)
	if err != nil {
		return nil, err
	}

	out := make([]int32, 0, (len(signal)+factor-1)/factor)
	for i := 0; i < len(signal); i += factor {
		out = append(out, signal[i])
	}
	return out, nil
}

// Downsample decimates signal to newSampleRate. A zero target rate or one
// above sampleRate yields an empty signal.
func Downsample(sampleRate uint32, signal []int32, newSampleRate uint32) []int32 {
	out, err := DownsampleStrict(sampleRate, signal, newSampleRate)
	if err != nil {
		return []int32{}
	}
	return out
}
