package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a delay line or stage would have no storage.
var ErrInvalidLength = errors.New("delay: invalid length")

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zero-filled delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: delay size must be > 0: %d", ErrInvalidLength, size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Oldest returns the sample written Len() writes ago.
func (d *Line) Oldest() float64 {
	return d.buffer[d.writePos]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
