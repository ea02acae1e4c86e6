package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ozpv/ringverb/dsp/core"
)

// Generator creates deterministic PCM signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave with the given peak amplitude.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]int32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return nil, fmt.Errorf("sine frequency must be finite: %f", freqHz)
	}
	out := make([]int32, samples)
	step := 2 * math.Pi * freqHz / float64(g.cfg.SampleRate)
	for i := range out {
		out[i] = core.TruncateSample(amplitude * math.Sin(step*float64(i)))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]int32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]int32, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = core.TruncateSample((rng.Float64()*2 - 1) * amplitude)
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at pos.
func (g *Generator) Impulse(amplitude int32, pos, samples int) ([]int32, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position out of range: %d", pos)
	}
	out := make([]int32, samples)
	out[pos] = amplitude
	return out, nil
}

// Duration returns the number of samples in seconds of audio.
func (g *Generator) Duration(seconds float64) int {
	return g.cfg.Samples(seconds)
}
