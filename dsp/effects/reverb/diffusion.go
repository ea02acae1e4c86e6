package reverb

import (
	"fmt"
	"math"

	"github.com/ozpv/ringverb/dsp/core"
	"github.com/ozpv/ringverb/dsp/delay"
)

const (
	// TailSeconds is the silence appended to the input so the cascade can
	// decay into an audible tail.
	TailSeconds = 5

	defaultDivisorOffset = 1

	schroederMinScale = 0.9
	schroederMaxScale = 1.5
)

// DiffuserOption mutates diffuser construction parameters.
type DiffuserOption func(*diffuserConfig) error

type diffuserConfig struct {
	divisorOffset int
}

// WithDivisorOffset sets d in the stage length floor(L/(i+d)). Offsets of 1
// and 2 are both useful tunings; d must be >= 1.
func WithDivisorOffset(d int) DiffuserOption {
	return func(cfg *diffuserConfig) error {
		if d < 1 {
			return fmt.Errorf("%w: divisor offset must be >= 1: %d", ErrInvalidParams, d)
		}

		cfg.divisorOffset = d

		return nil
	}
}

// Diffuser is the deterministic divisor cascade.
type Diffuser struct {
	divisorOffset int
}

// NewDiffuser returns a diffuser with divisor offset 1 unless overridden.
func NewDiffuser(opts ...DiffuserOption) (*Diffuser, error) {
	cfg := diffuserConfig{divisorOffset: defaultDivisorOffset}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Diffuser{divisorOffset: cfg.divisorOffset}, nil
}

// DivisorOffset returns d.
func (d *Diffuser) DivisorOffset() int { return d.divisorOffset }

// StageLengths returns the line length of every stage for p at sampleRate.
// A zero length is reported as an error wrapping ErrInvalidParams.
func (d *Diffuser) StageLengths(sampleRate uint32, p DelayParams) ([]int, error) {
	if sampleRate == 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0", ErrInvalidParams)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	base := delaySamples(p.Delay, sampleRate)

	// The last stage has the largest divisor; reject before allocating.
	if p.Stages > 0 {
		last := uint64(p.Stages) - 1 + uint64(d.divisorOffset)
		if last > uint64(base) {
			return nil, fmt.Errorf("%w: %d stages reach divisor %d but the base line is %d samples (delay %.3f ms at %d Hz)",
				ErrInvalidParams, p.Stages, last, base, p.Delay, sampleRate)
		}
	}

	lengths := make([]int, p.Stages)
	for i := range lengths {
		lengths[i] = base / (i + d.divisorOffset)
	}

	return lengths, nil
}

// Process pads signal with TailSeconds of silence and runs it through
// p.Stages all-pass sections sharing p.Feedback. The input is not modified.
func (d *Diffuser) Process(sampleRate uint32, signal []int32, p DelayParams) ([]int32, error) {
	lengths, err := d.StageLengths(sampleRate, p)
	if err != nil {
		return nil, err
	}

	return cascade(core.PadZeros(signal, tailSamples(sampleRate)), lengths, p.Feedback)
}

// DiffusionDelay runs the divisor cascade with offset 1.
func DiffusionDelay(sampleRate uint32, signal []int32, p DelayParams) ([]int32, error) {
	d, err := NewDiffuser()
	if err != nil {
		return nil, err
	}
	return d.Process(sampleRate, signal, p)
}

// StageDelays draws one delay time in milliseconds per stage from
// [0.9*baseDelayMs, 1.5*baseDelayMs).
func StageDelays(stages uint32, baseDelayMs float64, rng Uniform) ([]float64, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random source must not be nil", ErrInvalidParams)
	}

	if baseDelayMs <= 0 || math.IsNaN(baseDelayMs) || math.IsInf(baseDelayMs, 0) {
		return nil, fmt.Errorf("%w: base delay must be > 0 and finite: %f", ErrInvalidParams, baseDelayMs)
	}

	lo := schroederMinScale * baseDelayMs
	hi := schroederMaxScale * baseDelayMs

	delays := make([]float64, stages)
	for i := range delays {
		delays[i] = rng.Uniform(lo, hi)
	}

	return delays, nil
}

// SchroederAllPass pads signal with TailSeconds of silence and runs it
// through stages all-pass sections with randomized delays. All delays are
// drawn and converted before any filtering starts.
func SchroederAllPass(sampleRate uint32, signal []int32, stages uint32, baseDelayMs, feedback float64, rng Uniform) ([]int32, error) {
	if sampleRate == 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0", ErrInvalidParams)
	}

	if math.IsNaN(feedback) || math.IsInf(feedback, 0) {
		return nil, fmt.Errorf("%w: feedback must be finite: %f", ErrInvalidParams, feedback)
	}

	delays, err := StageDelays(stages, baseDelayMs, rng)
	if err != nil {
		return nil, err
	}

	lengths := make([]int, len(delays))
	for i, ms := range delays {
		lengths[i] = delaySamples(ms, sampleRate)
		if lengths[i] < 1 {
			return nil, fmt.Errorf("%w: stage %d line length is 0 (delay %.3f ms at %d Hz)",
				ErrInvalidParams, i, ms, sampleRate)
		}
	}

	return cascade(core.PadZeros(signal, tailSamples(sampleRate)), lengths, feedback)
}

// cascade feeds each stage's output into the next.
func cascade(signal []int32, lengths []int, feedback float64) ([]int32, error) {
	out := signal
	for i, m := range lengths {
		next, err := delay.AllPassFilter(out, m, feedback)
		if err != nil {
			return nil, fmt.Errorf("reverb: stage %d: %w", i, err)
		}
		out = next
	}
	return out, nil
}
