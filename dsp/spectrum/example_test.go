package spectrum_test

import (
	"fmt"

	"github.com/ozpv/ringverb/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleFFTMagnitude() {
	mag, _ := spectrum.FFTMagnitude([]float64{1, 1}, 4)
	fmt.Printf("%.3f %.3f %.3f\n", mag[0], mag[1], mag[2])
	// Output:
	// 2.000 1.414 0.000
}
