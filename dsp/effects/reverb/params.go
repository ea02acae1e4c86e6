package reverb

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned for unusable diffusion settings, including a
// stage whose derived line length would be zero.
var ErrInvalidParams = errors.New("reverb: invalid parameters")

// DelayParams configures the diffusion engine.
//
// Mix, Width, HighPass and LowPass are carried for downstream stages (the
// wet/dry blend and post filtering) and are not read by the cascades.
type DelayParams struct {
	// Mix is the wet share in percent, 0 to 100.
	Mix uint8
	// Delay is the base delay time in milliseconds.
	Delay float64
	// Feedback is the all-pass gain in percent.
	Feedback float64
	// Stages is the number of all-pass sections.
	Stages uint32
	// Width is the stereo width in percent.
	Width float64
	// HighPass is the post high-pass cutoff in Hz.
	HighPass float64
	// LowPass is the post low-pass cutoff in Hz.
	LowPass float64
}

// Validate reports whether p is usable by the cascades.
func (p DelayParams) Validate() error {
	if p.Mix > 100 {
		return fmt.Errorf("%w: mix must be in [0, 100]: %d", ErrInvalidParams, p.Mix)
	}

	if p.Delay <= 0 || math.IsNaN(p.Delay) || math.IsInf(p.Delay, 0) {
		return fmt.Errorf("%w: delay must be > 0 and finite: %f", ErrInvalidParams, p.Delay)
	}

	if math.IsNaN(p.Feedback) || math.IsInf(p.Feedback, 0) {
		return fmt.Errorf("%w: feedback must be finite: %f", ErrInvalidParams, p.Feedback)
	}

	return nil
}

// delaySamples converts milliseconds to whole samples, rounding down.
func delaySamples(ms float64, sampleRate uint32) int {
	return int(math.Floor(ms * float64(sampleRate) / 1000))
}

// tailSamples is the silence appended before filtering.
func tailSamples(sampleRate uint32) int {
	return TailSeconds * int(sampleRate)
}
