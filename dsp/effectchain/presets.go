package effectchain

import (
	"github.com/ozpv/ringverb/dsp/effects/modulation"
	"github.com/ozpv/ringverb/dsp/effects/reverb"
)

// DownsampleTelephone is the 8 kHz output rate offered by the lo-fi preset.
const DownsampleTelephone = 8000

// DefaultRingModParams is the square-swept guitar setting.
func DefaultRingModParams() modulation.RingModParams {
	return modulation.RingModParams{
		Mix:         50,
		Frequency:   156,
		Amount:      6.7,
		LFOWaveform: modulation.WaveformSquare,
		Rate:        0.18,
	}
}

// DefaultDelayParams is the long fully-wet diffusion setting.
func DefaultDelayParams() reverb.DelayParams {
	return reverb.DelayParams{
		Mix:      100,
		Delay:    519,
		Feedback: 90,
		Stages:   20,
		Width:    100,
		HighPass: 10,
		LowPass:  2580,
	}
}
