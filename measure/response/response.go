// Package response computes the magnitude frequency response of an impulse
// response.
//
// The response is zero-padded to a power-of-two FFT size and transformed
// once; bins run from DC to Nyquist inclusive.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

// Errors returned by Analyze.
var (
	ErrEmptyInput        = errors.New("response: impulse response is empty")
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
	ErrInvalidSize       = errors.New("response: FFT size must be a power of two >= 2")
)

const minFFTSize = 16

// Response is a one-sided magnitude response.
type Response struct {
	SampleRate  float64
	Size        int       // FFT size
	Frequencies []float64 // bin centre frequencies in Hz
	Magnitude   []float64 // linear magnitude per bin
	MagnitudeDB []float64 // 20*log10 magnitude per bin
}

type config struct {
	size int
}

// Option configures Analyze.
type Option func(*config)

// WithSize fixes the FFT size. Longer impulse responses are truncated to it.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// Analyze transforms ir and returns its magnitude response. Without
// WithSize the FFT size is the next power of two holding the whole input.
func Analyze(ir []float64, sampleRate float64, opts ...Option) (Response, error) {
	if len(ir) == 0 {
		return Response{}, ErrEmptyInput
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Response{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := cfg.size
	if size == 0 {
		size = nextPowerOf2(max(len(ir), minFFTSize))
	}

	if size < 2 || size&(size-1) != 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Response{}, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range ir[:min(len(ir), size)] {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, size)
	if err := plan.Forward(spectrum, in); err != nil {
		return Response{}, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	r := Response{
		SampleRate:  sampleRate,
		Size:        size,
		Frequencies: make([]float64, bins),
		Magnitude:   make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}

	vecmath.Magnitude(r.Magnitude, re, im)

	for k := range bins {
		r.Frequencies[k] = float64(k) * sampleRate / float64(size)
		r.MagnitudeDB[k] = core.LinearToDB(r.Magnitude[k])
	}

	return r, nil
}

// Range returns the smallest and largest magnitude in dB over bins whose
// frequency lies in [loHz, hiHz]. ok is false when no bin qualifies.
func (r Response) Range(loHz, hiHz float64) (minDB, maxDB float64, ok bool) {
	minDB, maxDB = math.Inf(1), math.Inf(-1)

	for k, f := range r.Frequencies {
		if f < loHz || f > hiHz {
			continue
		}

		minDB = math.Min(minDB, r.MagnitudeDB[k])
		maxDB = math.Max(maxDB, r.MagnitudeDB[k])
		ok = true
	}

	if !ok {
		return 0, 0, false
	}

	return minDB, maxDB, true
}

// Ripple returns the peak-to-peak magnitude variation in dB over
// [loHz, hiHz], or 0 when the band holds no bins.
func (r Response) Ripple(loHz, hiHz float64) float64 {
	lo, hi, ok := r.Range(loHz, hiHz)
	if !ok {
		return 0
	}

	return hi - lo
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}
