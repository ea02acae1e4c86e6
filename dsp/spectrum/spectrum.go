package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/ozpv/ringverb/dsp/core"
	"github.com/ozpv/ringverb/dsp/window"
)

const maxAnalysisFFTSize = 1 << 16

var errFFTSize = errors.New("spectrum: fft size must be a power of two >= 2")

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re, im := split(in)
	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re, im := split(in)
	out := make([]float64, len(in))
	vecmath.Power(out, re, im)
	return out
}

// FFTMagnitude returns the magnitudes of bins 0..fftSize/2 of x. x is zero
// padded or truncated to fftSize, which must be a power of two.
func FFTMagnitude(x []float64, fftSize int) ([]float64, error) {
	bins, err := forward(x, fftSize)
	if err != nil {
		return nil, err
	}
	return Magnitude(bins[:fftSize/2+1]), nil
}

// Report summarizes the spectrum of a PCM signal.
type Report struct {
	FFTSize    int
	BinHz      float64
	Magnitude  []float64
	DominantHz float64
}

// Analyze windows the first FFTSize samples of signal with a Hann window and
// returns its one-sided magnitude spectrum. FFTSize is the next power of two
// of len(signal), capped at 65536.
func Analyze(signal []int32, sampleRate uint32) (Report, error) {
	if sampleRate == 0 {
		return Report{}, fmt.Errorf("spectrum: sample rate must be > 0")
	}
	if len(signal) < 2 {
		return Report{}, fmt.Errorf("spectrum: need at least 2 samples: %d", len(signal))
	}

	fftSize := nextPowerOf2(len(signal))
	if fftSize > maxAnalysisFFTSize {
		fftSize = maxAnalysisFFTSize
	}

	frame := core.ToFloat(signal[:min(len(signal), fftSize)])
	window.Apply(window.TypeHann, frame)

	mag, err := FFTMagnitude(frame, fftSize)
	if err != nil {
		return Report{}, err
	}

	binHz := float64(sampleRate) / float64(fftSize)
	peak := 0
	for k := 1; k < len(mag); k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}

	return Report{
		FFTSize:    fftSize,
		BinHz:      binHz,
		Magnitude:  mag,
		DominantHz: float64(peak) * binHz,
	}, nil
}

// BandEnergy sums squared magnitudes of the bins within [loHz, hiHz].
func (r Report) BandEnergy(loHz, hiHz float64) float64 {
	if r.BinHz <= 0 || hiHz < loHz {
		return 0
	}

	lo := max(int(math.Ceil(loHz/r.BinHz)), 0)
	hi := min(int(math.Floor(hiHz/r.BinHz)), len(r.Magnitude)-1)

	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += r.Magnitude[k] * r.Magnitude[k]
	}
	return sum
}

func forward(x []float64, fftSize int) ([]complex128, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", errFFTSize, fftSize)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < len(x) && i < fftSize; i++ {
		in[i] = complex(x[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft forward: %w", err)
	}
	return out, nil
}

func split(in []complex128) (re, im []float64) {
	re = make([]float64, len(in))
	im = make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
