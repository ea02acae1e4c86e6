// Command ringverb runs the ring modulator and all-pass diffusion chain over
// a WAV file, a raw PCM file or a generated test tone.
//
// Usage:
//
//	ringverb [flags]
//
// Paths ending in .wav are read and written as WAV; the sample rate, bit
// depth and channel count then come from the input header. Any other path is
// headerless little-endian PCM described by -rate and -bits. Without -in a
// sine tone is generated at -rate.
//
// Examples:
//
//	ringverb -in guitar.wav -out output.wav
//	ringverb -in guitar.raw -rate 44100 -bits 16 -out output.raw
//	ringverb -mode schroeder -seed 7 -out tail.wav
//	ringverb -in guitar.wav -downsample 8000 -out lofi.wav
//	ringverb -tone 220 -tone-db -12 -v
//	ringverb -in guitar.wav -out - | aplay -f S16_LE -r 44100
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/ozpv/ringverb/dsp/core"
	"github.com/ozpv/ringverb/dsp/effectchain"
	"github.com/ozpv/ringverb/dsp/effects/modulation"
	"github.com/ozpv/ringverb/dsp/effects/reverb"
	"github.com/ozpv/ringverb/dsp/signal"
	"github.com/ozpv/ringverb/dsp/spectrum"
	"github.com/ozpv/ringverb/internal/pcm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	in, out     string
	rate        uint
	bits        int
	outBits     int
	mode        string
	seed        uint64
	offset      int
	downsample  uint
	tone        float64
	toneSeconds float64
	toneDB      float64
	waveform    string
	verbose     bool
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ringverb", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.in, "in", "", "input .wav or raw PCM path (default: generated tone)")
	fs.StringVar(&o.out, "out", "", "output .wav or raw PCM path (- for raw PCM on stdout)")
	fs.UintVar(&o.rate, "rate", 44100, "sample rate in Hz for raw input and the generated tone")
	fs.IntVar(&o.bits, "bits", 16, "bit depth of raw input (16 or 32)")
	fs.IntVar(&o.outBits, "out-bits", 0, "output bit depth; samples are clipped (0 keeps the input depth)")
	fs.StringVar(&o.mode, "mode", "divisor", "diffusion cascade: divisor or schroeder")
	fs.Uint64Var(&o.seed, "seed", 1, "random seed for the schroeder cascade")
	fs.IntVar(&o.offset, "offset", 1, "divisor offset for the divisor cascade")
	fs.UintVar(&o.downsample, "downsample", 0, "decimate output to this rate (0 keeps the input rate)")
	fs.Float64Var(&o.tone, "tone", 440, "generated tone frequency in Hz")
	fs.Float64Var(&o.toneSeconds, "tone-seconds", 1, "generated tone length in seconds")
	fs.Float64Var(&o.toneDB, "tone-db", -6, "generated tone peak level in dBFS (16 bit)")
	fs.StringVar(&o.waveform, "lfo", "", "override the LFO waveform (sine or square)")
	fs.BoolVar(&o.verbose, "v", false, "log stage timings")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: ringverb [flags]\n\n")
		fmt.Fprintf(stderr, "Applies ring modulation and all-pass diffusion to PCM audio.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := process(o, stdout, stderr, logger); err != nil {
		logger.Error("ringverb failed", slog.Any("error", err))
		return 1
	}
	return 0
}

func process(o options, stdout, stderr io.Writer, logger *slog.Logger) error {
	if o.rate == 0 || o.rate > math.MaxUint32 {
		return fmt.Errorf("sample rate out of range: %d", o.rate)
	}
	if o.downsample > math.MaxUint32 {
		return fmt.Errorf("downsample rate out of range: %d", o.downsample)
	}

	in, inFormat, err := loadInput(o)
	if err != nil {
		return err
	}
	logger.Debug("input loaded",
		slog.Int("samples", len(in)),
		slog.Uint64("rate", uint64(inFormat.SampleRate)),
		slog.Int("bits", inFormat.BitDepth),
		slog.Int("channels", inFormat.Channels))

	ringMod := effectchain.DefaultRingModParams()
	if o.waveform != "" {
		w, err := modulation.ParseWaveform(o.waveform)
		if err != nil {
			return err
		}
		ringMod.LFOWaveform = w
	}

	opts := []effectchain.Option{
		effectchain.WithLogger(logger),
		effectchain.WithDownsample(uint32(o.downsample)),
	}
	switch strings.ToLower(o.mode) {
	case "divisor":
		opts = append(opts, effectchain.WithDivisorOffset(o.offset))
	case "schroeder":
		opts = append(opts, effectchain.WithSchroeder(reverb.NewRandSource(o.seed)))
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}

	chain, err := effectchain.New(ringMod, effectchain.DefaultDelayParams(), opts...)
	if err != nil {
		return err
	}

	res, err := chain.Process(inFormat.SampleRate, in)
	if err != nil {
		return err
	}

	outFormat := inFormat
	outFormat.SampleRate = res.SampleRate
	if o.outBits != 0 {
		outFormat.BitDepth = o.outBits
	}

	switch o.out {
	case "":
	case "-":
		if isTerminal(stdout) {
			return errors.New("refusing to write raw PCM to a terminal")
		}
		if err := writeSamples(stdout, res.Signal, outFormat, logger); err != nil {
			return err
		}
		// stdout carries the samples, so the report moves to stderr.
		return printReport(stderr, res, outFormat.BitDepth)
	default:
		if err := writeOutput(o.out, res.Signal, outFormat, logger); err != nil {
			return err
		}
	}

	return printReport(stdout, res, outFormat.BitDepth)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func isWAV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".wav")
}

func loadInput(o options) ([]int32, pcm.Format, error) {
	sampleRate := uint32(o.rate)

	if o.in == "" {
		format := pcm.Format{SampleRate: sampleRate, BitDepth: 16, Channels: 1}
		gen := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(sampleRate)})
		amplitude := core.DBToLinear(o.toneDB) * math.MaxInt16
		samples, err := gen.Sine(o.tone, amplitude, gen.Duration(o.toneSeconds))
		return samples, format, err
	}

	f, err := os.Open(o.in)
	if err != nil {
		return nil, pcm.Format{}, err
	}
	defer f.Close()

	if isWAV(o.in) {
		return pcm.ReadWAV(f)
	}

	format := pcm.Format{SampleRate: sampleRate, BitDepth: o.bits, Channels: 1}
	samples, err := pcm.Read(f, format)
	return samples, format, err
}

func writeOutput(path string, samples []int32, format pcm.Format, logger *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if isWAV(path) {
		var clipped int
		clipped, err = pcm.WriteWAV(f, samples, format)
		logClipped(logger, clipped, format)
	} else {
		err = writeSamples(f, samples, format, logger)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeSamples(w io.Writer, samples []int32, format pcm.Format, logger *slog.Logger) error {
	clipped, err := pcm.Write(w, samples, format)
	if err != nil {
		return err
	}

	logClipped(logger, clipped, format)
	return nil
}

func logClipped(logger *slog.Logger, clipped int, format pcm.Format) {
	if clipped > 0 {
		logger.Warn("output clipped",
			slog.Int("samples", clipped),
			slog.Int("bits", format.BitDepth))
	}
}

// dbfs expresses a sample level relative to full scale at bitDepth.
func dbfs(level float64, bitDepth int) float64 {
	fullScale := math.Ldexp(1, bitDepth-1)
	return core.LinearToDB(level / fullScale)
}

func printReport(w io.Writer, res effectchain.Result, bitDepth int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Stage\tIn\tOut\tElapsed\n")
	fmt.Fprintf(tw, "-----\t--\t---\t-------\n")
	for _, s := range res.Stages {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", s.Name, s.InLen, s.OutLen, s.Elapsed)
	}
	fmt.Fprintln(tw)

	peak := signal.Peak(res.Signal)
	rms := signal.RMS(res.Signal)
	seconds := float64(len(res.Signal)) / float64(res.SampleRate)
	fmt.Fprintf(tw, "Samples\t%d\n", len(res.Signal))
	fmt.Fprintf(tw, "Rate\t%d Hz\n", res.SampleRate)
	fmt.Fprintf(tw, "Duration\t%.3f s\n", seconds)
	fmt.Fprintf(tw, "Peak\t%d (%.1f dBFS)\n", peak, dbfs(float64(peak), bitDepth))
	fmt.Fprintf(tw, "RMS\t%.1f (%.1f dBFS)\n", rms, dbfs(rms, bitDepth))

	if r, err := spectrum.Analyze(res.Signal, res.SampleRate); err == nil {
		fmt.Fprintf(tw, "Dominant\t%.1f Hz\n", r.DominantHz)
	}

	return tw.Flush()
}
