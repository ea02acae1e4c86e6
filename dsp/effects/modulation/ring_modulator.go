package modulation

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ozpv/ringverb/dsp/core"
)

// carrier sweep depth at Amount 10, as a multiple of the base frequency
const octaveSweep = 3.0

// RingModulatorOption mutates ring modulator construction parameters.
type RingModulatorOption func(*ringModConfig) error

type ringModConfig struct {
	logger *slog.Logger
}

// WithRingModLogger sets the logger that receives the exhausted-input notice.
func WithRingModLogger(logger *slog.Logger) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidParams)
		}

		cfg.logger = logger

		return nil
	}
}

// RingModulator multiplies the input by a sine carrier whose frequency is
// swept by an LFO:
//
//	lfoPhase     += 2π*rate/sr
//	carrierPhase += 2π*(f + lfo(lfoPhase)*f*3*amount/10)/sr
//	out = in*(1-mix) + in*sin(carrierPhase)*mix
//
// Both phases advance before the sample is computed and are wrapped into
// [0, 2π) after every step.
type RingModulator struct {
	sampleRate uint32
	params     RingModParams
	logger     *slog.Logger

	mix    float64
	amount float64

	lfoInc       float64
	lfoPhase     float64
	carrierPhase float64
}

// NewRingModulator validates params once and returns a modulator with both
// phases at zero.
func NewRingModulator(sampleRate uint32, params RingModParams, opts ...RingModulatorOption) (*RingModulator, error) {
	if sampleRate == 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0", ErrInvalidParams)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	cfg := ringModConfig{logger: slog.Default()}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &RingModulator{
		sampleRate: sampleRate,
		params:     params,
		logger:     cfg.logger,
		mix:        float64(params.Mix) / 100,
		amount:     params.Amount / 10,
		lfoInc:     core.TwoPi * params.Rate / float64(sampleRate),
	}, nil
}

// Reset returns both oscillators to phase zero.
func (r *RingModulator) Reset() {
	r.lfoPhase = 0
	r.carrierPhase = 0
}

// Params returns the configured parameters.
func (r *RingModulator) Params() RingModParams { return r.params }

// SampleRate returns sample rate in Hz.
func (r *RingModulator) SampleRate() uint32 { return r.sampleRate }

// LFOPhase returns the current LFO phase in [0, 2π).
func (r *RingModulator) LFOPhase() float64 { return r.lfoPhase }

// CarrierPhase returns the current carrier phase in [0, 2π).
func (r *RingModulator) CarrierPhase() float64 { return r.carrierPhase }

// Tick advances both oscillators by one sample and returns the carrier value.
func (r *RingModulator) Tick() float64 {
	r.lfoPhase = core.WrapPhase(r.lfoPhase + r.lfoInc)
	lfo := r.params.LFOWaveform.value(r.lfoPhase)

	f := r.params.Frequency
	inc := core.TwoPi * (f + lfo*f*octaveSweep*r.amount) / float64(r.sampleRate)
	r.carrierPhase = core.WrapPhase(r.carrierPhase + inc)

	return math.Sin(r.carrierPhase)
}

// ProcessSample modulates one sample.
func (r *RingModulator) ProcessSample(sample int32) int32 {
	carrier := r.Tick()
	x := float64(sample)
	return core.TruncateSample(x*(1-r.mix) + x*carrier*r.mix)
}

// Render produces up to sampleLength modulated samples from signal. If
// signal is shorter, rendering stops at its end and a warning is logged;
// the shorter result is returned.
func (r *RingModulator) Render(sampleLength int, signal []int32) []int32 {
	n := max(sampleLength, 0)
	if len(signal) < n {
		r.logger.Warn("signal processing may be incomplete",
			slog.String("stage", "ringmod"),
			slog.Int("requested", n),
			slog.Int("available", len(signal)))
		n = len(signal)
	}

	out := make([]int32, n)
	for i := range out {
		out[i] = r.ProcessSample(signal[i])
	}
	return out
}

// RingModulate creates a fresh modulator and renders sampleLength samples.
func RingModulate(sampleRate uint32, sampleLength int, signal []int32, params RingModParams, opts ...RingModulatorOption) ([]int32, error) {
	r, err := NewRingModulator(sampleRate, params, opts...)
	if err != nil {
		return nil, err
	}
	return r.Render(sampleLength, signal), nil
}
