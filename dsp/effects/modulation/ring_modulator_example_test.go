package modulation_test

import (
	"fmt"

	"github.com/ozpv/ringverb/dsp/effects/modulation"
)

func ExampleRingModulate() {
	params := modulation.RingModParams{
		Mix:         100,
		LFOWaveform: modulation.WaveformSinusoidal,
		Frequency:   2,
	}

	out, err := modulation.RingModulate(8, 4, []int32{1000, 1000, 1000, 1000}, params)
	if err != nil {
		fmt.Println("error")
		return
	}

	fmt.Println(out)
	// Output:
	// [1000 0 -1000 0]
}
