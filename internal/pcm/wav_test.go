package pcm

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ozpv/ringverb/internal/testutil"
)

func writeTempWAV(t *testing.T, samples []int32, f Format) (string, int) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer file.Close()

	clipped, err := WriteWAV(file, samples, f)
	if err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}
	return path, clipped
}

func readTempWAV(t *testing.T, path string) ([]int32, Format) {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	got, f, err := ReadWAV(file)
	if err != nil {
		t.Fatalf("ReadWAV() error = %v", err)
	}
	return got, f
}

func TestWAVRoundTrip16Clips(t *testing.T) {
	path, clipped := writeTempWAV(t, []int32{40000, -40000, 12, -7}, Format{SampleRate: 44100, BitDepth: 16})
	if clipped != 2 {
		t.Fatalf("clipped = %d, want 2", clipped)
	}

	got, f := readTempWAV(t, path)
	testutil.RequireSamplesEqual(t, got, []int32{math.MaxInt16, math.MinInt16, 12, -7})

	want := Format{SampleRate: 44100, BitDepth: 16, Channels: 1}
	if f != want {
		t.Fatalf("format = %+v, want %+v", f, want)
	}
}

func TestWAVRoundTrip24(t *testing.T) {
	path, clipped := writeTempWAV(t, []int32{1 << 23, 1 << 20, 0, 5}, Format{SampleRate: 48000, BitDepth: 24})
	if clipped != 1 {
		t.Fatalf("clipped = %d, want 1", clipped)
	}

	got, f := readTempWAV(t, path)
	testutil.RequireSamplesEqual(t, got, []int32{1<<23 - 1, 1 << 20, 0, 5})
	if f.BitDepth != 24 || f.SampleRate != 48000 {
		t.Fatalf("format = %+v", f)
	}
}

func TestWAVKeepsInterleavedChannels(t *testing.T) {
	in := []int32{1, -1, 2, -2, 3, -3}
	path, _ := writeTempWAV(t, in, Format{SampleRate: 8000, BitDepth: 16, Channels: 2})

	got, f := readTempWAV(t, path)
	testutil.RequireSamplesEqual(t, got, in)
	if f.Channels != 2 {
		t.Fatalf("channels = %d, want 2", f.Channels)
	}
}

func TestWAVValidation(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer file.Close()

	if _, err := WriteWAV(file, nil, Format{SampleRate: 8000, BitDepth: 8}); !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Fatalf("WriteWAV(8 bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
	if _, err := WriteWAV(file, nil, Format{BitDepth: 16}); err == nil {
		t.Fatal("WriteWAV(rate 0) expected error")
	}

	if _, _, err := ReadWAV(bytes.NewReader([]byte("not a wav file at all"))); err == nil {
		t.Fatal("ReadWAV(garbage) expected error")
	}
}
