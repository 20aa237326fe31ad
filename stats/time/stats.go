// Package time provides time-domain level statistics for rendered signals.
package time

import (
	"math"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

// RMS returns the root-mean-square of signal, or zero when it is empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var energy float64
	for _, x := range signal {
		energy += x * x
	}

	return math.Sqrt(energy / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// ZeroCrossings counts sign changes between nonzero samples. Exact zeros
// are skipped, so a reverb tail that starts after a silent gap, or a
// waveform passing through zero, counts each crossing once.
func ZeroCrossings(signal []float64) int {
	var (
		count int
		prev  float64
	)

	for _, x := range signal {
		if x == 0 {
			continue
		}

		if prev*x < 0 {
			count++
		}

		prev = x
	}

	return count
}

// WindowRMS splits signal into consecutive windows of the given length and
// returns the RMS of each. A trailing partial window is dropped, so every
// value covers the same duration. Returns nil for window <= 0.
func WindowRMS(signal []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}

	out := make([]float64, len(signal)/window)
	for i := range out {
		out[i] = RMS(signal[i*window : (i+1)*window])
	}

	return out
}

// RMSdB returns the RMS level in dBFS. Returns -Inf for silence.
func RMSdB(signal []float64) float64 {
	return core.LinearToDB(RMS(signal))
}

// CrestFactor returns the peak-to-RMS ratio in dB. Silence yields zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return core.LinearToDB(Peak(signal) / r)
}
