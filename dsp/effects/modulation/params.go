package modulation

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned for out-of-range ring modulator settings.
var ErrInvalidParams = errors.New("ring modulator: invalid parameters")

// RingModParams configures the ring modulator.
type RingModParams struct {
	// Mix is the wet share in percent, 0 to 100.
	Mix uint8
	// Amount is the LFO depth, 0 to 10. It scales a jump of up to three
	// octaves above Frequency.
	Amount float64
	// LFOWaveform is the LFO shape.
	LFOWaveform Waveform
	// Rate is the LFO frequency in Hz, nominally 0.1 to 25.
	Rate float64
	// Frequency is the carrier base frequency in Hz: 0.6 to 80 on the LO
	// range, 30 to 4k on the HI range.
	Frequency float64
}

// Validate reports whether p is usable. The documented Rate and Frequency
// ranges are not enforced; only finiteness is.
func (p RingModParams) Validate() error {
	if p.Mix > 100 {
		return fmt.Errorf("%w: mix must be in [0, 100]: %d", ErrInvalidParams, p.Mix)
	}

	if p.Amount < 0 || p.Amount > 10 || math.IsNaN(p.Amount) {
		return fmt.Errorf("%w: amount must be in [0, 10]: %f", ErrInvalidParams, p.Amount)
	}

	if !p.LFOWaveform.valid() {
		return fmt.Errorf("%w: unknown lfo waveform %d", ErrInvalidParams, int(p.LFOWaveform))
	}

	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return fmt.Errorf("%w: rate must be finite: %f", ErrInvalidParams, p.Rate)
	}

	if math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) {
		return fmt.Errorf("%w: frequency must be finite: %f", ErrInvalidParams, p.Frequency)
	}

	return nil
}
