package effectchain

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ozpv/ringverb/dsp/core"
	"github.com/ozpv/ringverb/dsp/effects/modulation"
	"github.com/ozpv/ringverb/dsp/effects/reverb"
	"github.com/ozpv/ringverb/dsp/resample"
	"github.com/ozpv/ringverb/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func smallDelay() reverb.DelayParams {
	return reverb.DelayParams{Mix: 100, Delay: 20, Feedback: 60, Stages: 3}
}

func TestChainMatchesStagesComposedByHand(t *testing.T) {
	const sampleRate = 1000

	in := testutil.DeterministicPCMNoise(4, 1<<16, 300)
	rm := DefaultRingModParams()
	dp := smallDelay()

	c, err := New(rm, dp, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Process(sampleRate, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	modulated, err := modulation.RingModulate(sampleRate, len(in), in, rm)
	if err != nil {
		t.Fatalf("RingModulate() error = %v", err)
	}
	want, err := reverb.DiffusionDelay(sampleRate, modulated, dp)
	if err != nil {
		t.Fatalf("DiffusionDelay() error = %v", err)
	}

	testutil.RequireSamplesEqual(t, got.Signal, want)

	if got.SampleRate != sampleRate {
		t.Fatalf("SampleRate = %d, want %d", got.SampleRate, sampleRate)
	}
	if len(got.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(got.Stages))
	}
	if got.Stages[1].OutLen != len(in)+reverb.TailSeconds*sampleRate {
		t.Fatalf("diffusion out len = %d", got.Stages[1].OutLen)
	}
}

func TestChainDryMixReturnsPaddedModulatedSignal(t *testing.T) {
	const sampleRate = 500

	in := testutil.PCMDC(1000, 50)
	rm := modulation.RingModParams{Mix: 0, Frequency: 100}
	dp := smallDelay()
	dp.Mix = 0

	c, err := New(rm, dp, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Process(sampleRate, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSamplesEqual(t, got.Signal, core.PadZeros(in, reverb.TailSeconds*sampleRate))

	if last := got.Stages[len(got.Stages)-1]; last.Name != "mix" {
		t.Fatalf("last stage = %q, want mix", last.Name)
	}
}

func TestChainPartialMixReportsAndPropagatesLaterErrors(t *testing.T) {
	const sampleRate = 1000

	dp := smallDelay()
	dp.Mix = 50
	in := testutil.PCMDC(800, 40)

	c, err := New(DefaultRingModParams(), dp, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := c.Process(sampleRate, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	names := make([]string, len(got.Stages))
	for i, s := range got.Stages {
		names[i] = s.Name
	}
	if strings.Join(names, ",") != "ringmod,divisor,mix" {
		t.Fatalf("stages = %v", names)
	}

	c, err = New(DefaultRingModParams(), dp, WithLogger(quietLogger()), WithDownsample(2*sampleRate))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := c.Process(sampleRate, in); !errors.Is(err, resample.ErrDegenerateResample) {
		t.Fatalf("Process() error = %v, want ErrDegenerateResample", err)
	}
}

func TestChainDownsample(t *testing.T) {
	const sampleRate = 16000

	in := testutil.DeterministicPCMSine(440, sampleRate, 10000, 1600)

	c, err := New(DefaultRingModParams(), smallDelay(),
		WithLogger(quietLogger()),
		WithDownsample(DownsampleTelephone))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Process(sampleRate, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	full := len(in) + reverb.TailSeconds*sampleRate
	if len(got.Signal) != full/2 {
		t.Fatalf("len = %d, want %d", len(got.Signal), full/2)
	}
	if got.SampleRate != DownsampleTelephone {
		t.Fatalf("SampleRate = %d, want %d", got.SampleRate, DownsampleTelephone)
	}
}

func TestChainDownsampleAboveRateFails(t *testing.T) {
	c, err := New(DefaultRingModParams(), smallDelay(),
		WithLogger(quietLogger()),
		WithDownsample(48000))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Process(8000, testutil.PCMDC(1, 10))
	if !errors.Is(err, resample.ErrDegenerateResample) {
		t.Fatalf("error = %v, want ErrDegenerateResample", err)
	}
}

func TestChainSchroederDeterministic(t *testing.T) {
	const sampleRate = 1000

	in := testutil.PCMImpulse(64, 0, 1<<18)

	run := func() []int32 {
		c, err := New(DefaultRingModParams(), smallDelay(),
			WithLogger(quietLogger()),
			WithSchroeder(reverb.NewRandSource(21)))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c.Mode() != DiffusionSchroeder {
			t.Fatalf("Mode() = %v, want schroeder", c.Mode())
		}

		res, err := c.Process(sampleRate, in)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		return res.Signal
	}

	testutil.RequireSamplesEqual(t, run(), run())
}

func TestChainDivisorOffsetPropagates(t *testing.T) {
	const sampleRate = 1000

	in := testutil.PCMImpulse(32, 0, 1<<16)
	dp := smallDelay()

	c, err := New(modulation.RingModParams{Frequency: 1}, dp,
		WithLogger(quietLogger()),
		WithDivisorOffset(2))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Process(sampleRate, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	d, err := reverb.NewDiffuser(reverb.WithDivisorOffset(2))
	if err != nil {
		t.Fatalf("NewDiffuser() error = %v", err)
	}
	want, err := d.Process(sampleRate, in, dp)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSamplesEqual(t, got.Signal, want)
}

func TestChainLogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(DefaultRingModParams(), smallDelay(), WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := c.Process(1000, testutil.PCMDC(10, 10)); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"stage=ringmod", "stage=divisor"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %s", want, out)
		}
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(modulation.RingModParams{Mix: 200}, smallDelay()); !errors.Is(err, modulation.ErrInvalidParams) {
		t.Fatalf("ring mod error = %v, want modulation.ErrInvalidParams", err)
	}
	if _, err := New(DefaultRingModParams(), reverb.DelayParams{}); !errors.Is(err, reverb.ErrInvalidParams) {
		t.Fatalf("delay error = %v, want reverb.ErrInvalidParams", err)
	}
	if _, err := New(DefaultRingModParams(), smallDelay(), WithSchroeder(nil)); !errors.Is(err, ErrNoRandomSource) {
		t.Fatalf("schroeder error = %v, want ErrNoRandomSource", err)
	}
	if _, err := New(DefaultRingModParams(), smallDelay(), WithDivisorOffset(0)); !errors.Is(err, reverb.ErrInvalidParams) {
		t.Fatalf("offset error = %v, want reverb.ErrInvalidParams", err)
	}
	if _, err := New(DefaultRingModParams(), smallDelay(), WithLogger(nil)); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestPresetsValidate(t *testing.T) {
	if err := DefaultRingModParams().Validate(); err != nil {
		t.Fatalf("DefaultRingModParams invalid: %v", err)
	}
	if err := DefaultDelayParams().Validate(); err != nil {
		t.Fatalf("DefaultDelayParams invalid: %v", err)
	}

	// The default cascade must yield non-zero stage lengths at common rates.
	d, err := reverb.NewDiffuser()
	if err != nil {
		t.Fatalf("NewDiffuser() error = %v", err)
	}
	for _, sr := range []uint32{8000, 44100, 48000} {
		if _, err := d.StageLengths(sr, DefaultDelayParams()); err != nil {
			t.Fatalf("StageLengths(%d) error = %v", sr, err)
		}
	}
}
