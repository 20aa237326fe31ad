package delay

import (
	"errors"
	"fmt"
)

// Errors returned by Line configuration.
var (
	ErrInvalidCapacity = errors.New("delay: capacity must be > 0")
	ErrInvalidLength   = errors.New("delay: length out of range")
)

// Line is a circular delay line with a fixed capacity and a separately
// configured active length.
//
// The backing store is allocated once by New. Only the first Len() samples
// are ever read or written; the rest of the capacity is headroom. The write
// head wraps modulo the active length.
type Line struct {
	buffer   []float64
	length   int
	writePos int
}

// New returns a delay line able to hold up to capacity samples.
// The active length is zero until SetLength is called.
func New(capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Line{buffer: make([]float64, capacity)}, nil
}

// Capacity returns the maximum active length.
func (d *Line) Capacity() int {
	return len(d.buffer)
}

// Len returns the active delay in samples.
func (d *Line) Len() int {
	return d.length
}

// WriteIndex returns the position the next Write stores to.
func (d *Line) WriteIndex() int {
	return d.writePos
}

// SetLength sets the active delay in samples and rewinds the write head.
// Stored samples are kept; call Clear to zero them.
func (d *Line) SetLength(length int) error {
	if length <= 0 || length > len(d.buffer) {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLength, length, len(d.buffer))
	}

	d.length = length
	d.writePos = 0

	return nil
}

// Clear zeroes the active samples. The length and write head are unchanged.
func (d *Line) Clear() {
	clear(d.buffer[:d.length])
}

// Delayed returns the sample at the write head, which was written Len()
// steps ago. It is the slot the next Write overwrites.
func (d *Line) Delayed() float64 {
	return d.buffer[d.writePos]
}

// Write stores one sample at the write head and advances it.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= d.length {
		d.writePos = 0
	}
}

// Step writes sample and returns the sample it replaced.
func (d *Line) Step(sample float64) float64 {
	out := d.buffer[d.writePos]
	d.Write(sample)

	return out
}

// Read returns the sample written delay steps ago, for delay in [1, Len()].
// Delays outside that range read as 0.
func (d *Line) Read(delay int) float64 {
	if delay < 1 || delay > d.length {
		return 0
	}

	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += d.length
	}

	return d.buffer[readPos]
}
