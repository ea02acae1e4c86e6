package pcm

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag; float WAVs are not accepted.
const wavFormatPCM = 1

func wavBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// ReadWAV decodes an integer PCM WAV file. The returned Format carries the
// sample rate, bit depth and channel count from the header.
func ReadWAV(r io.ReadSeeker) ([]int32, Format, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, Format{}, fmt.Errorf("pcm: not a valid wav file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, Format{}, fmt.Errorf("pcm: wav audio format %d is not integer PCM", dec.WavAudioFormat)
	}

	f := Format{
		SampleRate: dec.SampleRate,
		BitDepth:   int(dec.BitDepth),
		Channels:   int(dec.NumChans),
	}
	if err := wavBitDepth(f.BitDepth); err != nil {
		return nil, Format{}, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, Format{}, fmt.Errorf("pcm: decode wav: %w", err)
	}

	out := make([]int32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = int32(v)
	}
	return out, f, nil
}

// WriteWAV encodes samples as an integer PCM WAV file, clipping each to the
// range of f.BitDepth. It returns the number of clipped samples.
func WriteWAV(w io.WriteSeeker, samples []int32, f Format) (int, error) {
	if err := wavBitDepth(f.BitDepth); err != nil {
		return 0, err
	}
	if f.SampleRate == 0 {
		return 0, fmt.Errorf("pcm: wav sample rate must be > 0")
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: f.channels(), SampleRate: int(f.SampleRate)},
		Data:           make([]int, len(samples)),
		SourceBitDepth: f.BitDepth,
	}

	clipped := 0
	for i, s := range samples {
		v, c := clip(s, f.BitDepth)
		if c {
			clipped++
		}
		buf.Data[i] = int(v)
	}

	enc := wav.NewEncoder(w, int(f.SampleRate), f.BitDepth, f.channels(), wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return clipped, fmt.Errorf("pcm: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return clipped, fmt.Errorf("pcm: close wav: %w", err)
	}
	return clipped, nil
}
