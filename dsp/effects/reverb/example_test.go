package reverb_test

import (
	"fmt"

	"github.com/ozpv/ringverb/dsp/effects/reverb"
)

func ExampleDiffuser_StageLengths() {
	d, _ := reverb.NewDiffuser(reverb.WithDivisorOffset(2))
	lengths, _ := d.StageLengths(8000, reverb.DelayParams{Delay: 10, Feedback: 50, Stages: 4})
	fmt.Println(lengths)
	// Output:
	// [40 26 20 16]
}

func ExampleDiffusionDelay() {
	out, _ := reverb.DiffusionDelay(100, []int32{1, 2, 3}, reverb.DelayParams{Delay: 20, Feedback: 50, Stages: 2})
	fmt.Println(len(out))
	// Output:
	// 503
}
