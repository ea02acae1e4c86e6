package effectchain

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ozpv/ringverb/dsp/effects/modulation"
	"github.com/ozpv/ringverb/dsp/effects/reverb"
	"github.com/ozpv/ringverb/dsp/resample"
	"github.com/ozpv/ringverb/dsp/signal"
)

// ErrNoRandomSource is returned when the Schroeder cascade is selected
// without a Uniform source.
var ErrNoRandomSource = errors.New("effectchain: schroeder mode needs a random source")

// DiffusionMode selects the all-pass cascade.
type DiffusionMode int

const (
	// DiffusionDivisor is the deterministic floor(L/(i+d)) cascade.
	DiffusionDivisor DiffusionMode = iota
	// DiffusionSchroeder draws stage delays from a Uniform source.
	DiffusionSchroeder
)

// String implements fmt.Stringer.
func (m DiffusionMode) String() string {
	switch m {
	case DiffusionDivisor:
		return "divisor"
	case DiffusionSchroeder:
		return "schroeder"
	default:
		return fmt.Sprintf("DiffusionMode(%d)", int(m))
	}
}

// Option configures a Chain.
type Option func(*Chain) error

// WithLogger sets the logger for stage timings and stage notices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chain) error {
		if logger == nil {
			return fmt.Errorf("effectchain: logger must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithDivisorOffset tunes the divisor cascade.
func WithDivisorOffset(d int) Option {
	return func(c *Chain) error {
		diffuser, err := reverb.NewDiffuser(reverb.WithDivisorOffset(d))
		if err != nil {
			return err
		}
		c.diffuser = diffuser
		return nil
	}
}

// WithSchroeder selects the randomized cascade drawing from rng.
func WithSchroeder(rng reverb.Uniform) Option {
	return func(c *Chain) error {
		if rng == nil {
			return ErrNoRandomSource
		}
		c.mode = DiffusionSchroeder
		c.rng = rng
		return nil
	}
}

// WithDownsample decimates the output to rate. Zero disables the stage.
func WithDownsample(rate uint32) Option {
	return func(c *Chain) error {
		c.downsampleRate = rate
		return nil
	}
}

// StageReport describes one executed stage.
type StageReport struct {
	Name    string
	InLen   int
	OutLen  int
	Elapsed time.Duration
}

// Result is the output of a chain run.
type Result struct {
	Signal     []int32
	SampleRate uint32
	Stages     []StageReport
}

// Chain holds validated parameters for the full transform. It keeps no
// signal state between runs.
type Chain struct {
	ringMod modulation.RingModParams
	delay   reverb.DelayParams

	mode           DiffusionMode
	diffuser       *reverb.Diffuser
	rng            reverb.Uniform
	downsampleRate uint32
	logger         *slog.Logger
}

// New validates both parameter sets and applies opts.
func New(ringMod modulation.RingModParams, delay reverb.DelayParams, opts ...Option) (*Chain, error) {
	if err := ringMod.Validate(); err != nil {
		return nil, err
	}
	if err := delay.Validate(); err != nil {
		return nil, err
	}

	diffuser, err := reverb.NewDiffuser()
	if err != nil {
		return nil, err
	}

	c := &Chain{
		ringMod:  ringMod,
		delay:    delay,
		mode:     DiffusionDivisor,
		diffuser: diffuser,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Mode returns the selected diffusion cascade.
func (c *Chain) Mode() DiffusionMode { return c.mode }

// Process runs the full transform over signal. The ring modulator renders
// len(signal) samples.
func (c *Chain) Process(sampleRate uint32, in []int32) (Result, error) {
	res := Result{SampleRate: sampleRate}

	modulated, err := c.stage(&res, "ringmod", len(in), func() ([]int32, error) {
		return modulation.RingModulate(sampleRate, len(in), in, c.ringMod,
			modulation.WithRingModLogger(c.logger))
	})
	if err != nil {
		return Result{}, err
	}

	wet, err := c.stage(&res, c.mode.String(), len(modulated), func() ([]int32, error) {
		if c.mode == DiffusionSchroeder {
			return reverb.SchroederAllPass(sampleRate, modulated, c.delay.Stages, c.delay.Delay, c.delay.Feedback, c.rng)
		}
		return c.diffuser.Process(sampleRate, modulated, c.delay)
	})
	if err != nil {
		return Result{}, err
	}

	out := wet
	if c.delay.Mix < 100 {
		out, err = c.stage(&res, "mix", len(wet), func() ([]int32, error) {
			return signal.Mix(modulated, wet, float64(c.delay.Mix)/100), nil
		})
		if err != nil {
			return Result{}, err
		}
	}

	if c.downsampleRate != 0 {
		out, err = c.stage(&res, "downsample", len(out), func() ([]int32, error) {
			return resample.DownsampleStrict(sampleRate, out, c.downsampleRate)
		})
		if err != nil {
			return Result{}, err
		}
		res.SampleRate = c.downsampleRate
	}

	res.Signal = out
	return res, nil
}

func (c *Chain) stage(res *Result, name string, inLen int, fn func() ([]int32, error)) ([]int32, error) {
	start := time.Now()

	out, err := fn()
	if err != nil {
		return nil, fmt.Errorf("effectchain: %s: %w", name, err)
	}

	report := StageReport{Name: name, InLen: inLen, OutLen: len(out), Elapsed: time.Since(start)}
	res.Stages = append(res.Stages, report)

	c.logger.Debug("stage done",
		slog.String("stage", name),
		slog.Int("in", report.InLen),
		slog.Int("out", report.OutLen),
		slog.Duration("elapsed", report.Elapsed))

	return out, nil
}
