package delay

import (
	"fmt"
	"math"

	"github.com/ozpv/ringverb/dsp/core"
)

// AllPass is a single recursive all-pass section over a circular line.
type AllPass struct {
	line *Line
	gain float64
}

// NewAllPass returns an all-pass section with a line of length samples.
// feedbackPercent is normalized by 100; typical values are in [0, 100].
func NewAllPass(length int, feedbackPercent float64) (*AllPass, error) {
	if math.IsNaN(feedbackPercent) || math.IsInf(feedbackPercent, 0) {
		return nil, fmt.Errorf("allpass feedback must be finite: %f", feedbackPercent)
	}

	line, err := New(length)
	if err != nil {
		return nil, fmt.Errorf("allpass: %w", err)
	}

	return &AllPass{line: line, gain: feedbackPercent / 100}, nil
}

// Len returns the line length in samples.
func (a *AllPass) Len() int {
	return a.line.Len()
}

// Gain returns the normalized feedback coefficient.
func (a *AllPass) Gain() float64 {
	return a.gain
}

// ProcessSample runs one sample through the section. The delayed value is
// read before the line slot is overwritten.
func (a *AllPass) ProcessSample(sample int32) int32 {
	x := float64(sample)
	delayed := a.line.Oldest()
	out := core.TruncateSample(-a.gain*x + delayed)
	a.line.Write(x + a.gain*float64(out))
	return out
}

// Process filters in into a newly allocated slice. State carries over
// between calls; use Reset to start from silence.
func (a *AllPass) Process(in []int32) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = a.ProcessSample(v)
	}
	return out
}

// Reset clears the delay line.
func (a *AllPass) Reset() {
	a.line.Reset()
}

// AllPassFilter filters signal through a fresh all-pass section of the given
// length. A length of zero or less returns an error wrapping ErrInvalidLength.
func AllPassFilter(signal []int32, length int, feedbackPercent float64) ([]int32, error) {
	ap, err := NewAllPass(length, feedbackPercent)
	if err != nil {
		return nil, err
	}
	return ap.Process(signal), nil
}
