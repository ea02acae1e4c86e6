package core

// DefaultSampleRate is the CD rate the presets are tuned for.
const DefaultSampleRate uint32 = 44100

// ProcessorConfig carries the sample rate shared by the generators and the
// PCM stages.
type ProcessorConfig struct {
	SampleRate uint32
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// WithSampleRate overrides the sample rate. Zero keeps the current value.
func WithSampleRate(sampleRate uint32) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate != 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions starts from DefaultSampleRate and applies opts in
// order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := ProcessorConfig{SampleRate: DefaultSampleRate}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples converts a duration in seconds to a whole sample count, truncating.
// Negative durations yield 0.
func (c ProcessorConfig) Samples(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(seconds * float64(c.SampleRate))
}
