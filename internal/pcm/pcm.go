// Package pcm reads and writes PCM audio as flat int32 sample sequences.
//
// WAV files go through go-audio/wav; headerless little-endian streams are
// handled directly for piping. Both writers clip every sample to the target
// bit depth, and interleaved channels stay interleaved in the flat sequence.
package pcm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedBitDepth is returned for bit depths the codec cannot carry.
var ErrUnsupportedBitDepth = errors.New("pcm: unsupported bit depth")

// Format describes a PCM stream. Channels is only used by WAV; zero means
// mono.
type Format struct {
	SampleRate uint32
	BitDepth   int
	Channels   int
}

func (f Format) channels() int {
	if f.Channels <= 0 {
		return 1
	}
	return f.Channels
}

// clip limits s to the signed range of bitDepth.
func clip(s int32, bitDepth int) (int32, bool) {
	if bitDepth >= 32 {
		return s, false
	}
	hi := int32(1)<<(bitDepth-1) - 1
	lo := -hi - 1
	switch {
	case s > hi:
		return hi, true
	case s < lo:
		return lo, true
	}
	return s, false
}

func (f Format) bytesPerSample() (int, error) {
	switch f.BitDepth {
	case 16:
		return 2, nil
	case 32:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, f.BitDepth)
	}
}

// Read decodes all samples from a headerless stream. A trailing partial sample is an error.
func Read(r io.Reader, f Format) ([]int32, error) {
	width, err := f.bytesPerSample()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pcm: read: %w", err)
	}
	if len(data)%width != 0 {
		return nil, fmt.Errorf("pcm: %d trailing bytes in %d-bit stream", len(data)%width, f.BitDepth)
	}

	out := make([]int32, len(data)/width)
	for i := range out {
		chunk := data[i*width : (i+1)*width]
		if width == 2 {
			out[i] = int32(int16(binary.LittleEndian.Uint16(chunk)))
		} else {
			out[i] = int32(binary.LittleEndian.Uint32(chunk))
		}
	}
	return out, nil
}

// Write encodes samples to w as a headerless stream, clipping each to the range of f.BitDepth. It
// returns the number of clipped samples.
func Write(w io.Writer, samples []int32, f Format) (int, error) {
	width, err := f.bytesPerSample()
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, width)
	clipped := 0

	for _, s := range samples {
		v, c := clip(s, f.BitDepth)
		if c {
			clipped++
		}
		if width == 2 {
			binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
		} else {
			binary.LittleEndian.PutUint32(buf, uint32(v))
		}

		if _, err := bw.Write(buf); err != nil {
			return clipped, fmt.Errorf("pcm: write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return clipped, fmt.Errorf("pcm: flush: %w", err)
	}
	return clipped, nil
}
