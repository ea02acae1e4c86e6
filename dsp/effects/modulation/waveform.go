package modulation

import (
	"fmt"
	"math"
	"strings"
)

// Waveform selects the LFO shape.
type Waveform int

const (
	// WaveformSinusoidal sweeps the carrier smoothly between its base
	// frequency and the modulated ceiling.
	WaveformSinusoidal Waveform = iota
	// WaveformSquare jumps between the unmodulated carrier and the ceiling.
	// It is derived from the sign of the sinusoid, so it is 50% duty and
	// phase-locked to WaveformSinusoidal.
	WaveformSquare
)

// String implements fmt.Stringer.
func (w Waveform) String() string {
	switch w {
	case WaveformSinusoidal:
		return "sine"
	case WaveformSquare:
		return "square"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// ParseWaveform maps "sine"/"sinusoidal" and "square" to a Waveform.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "sin", "sinusoidal":
		return WaveformSinusoidal, nil
	case "square", "sq":
		return WaveformSquare, nil
	default:
		return 0, fmt.Errorf("%w: unknown lfo waveform %q", ErrInvalidParams, s)
	}
}

func (w Waveform) valid() bool {
	return w == WaveformSinusoidal || w == WaveformSquare
}

// value evaluates the LFO at phase. Validate rejects unknown waveforms, so
// the default case is unreachable from a constructed RingModulator.
func (w Waveform) value(phase float64) float64 {
	s := math.Sin(phase)
	switch w {
	case WaveformSinusoidal:
		return s
	case WaveformSquare:
		if s >= 0 {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("modulation: unhandled %v", w))
	}
}
