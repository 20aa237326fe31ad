// Package testutil holds signal fixtures and assertions shared by the
// package tests.
package testutil

import "math/rand"

// DeterministicNoise returns length samples of uniform noise in
// [-amplitude, amplitude) drawn from a generator seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, max(length, 0))
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns length samples that are zero except for a one at pos.
// A pos outside the signal yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, max(length, 0))
	if pos >= 0 && pos < len(out) {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, max(length, 0))
	for i := range out {
		out[i] = value
	}

	return out
}

// SplitBlocks cuts signal into consecutive blocks whose lengths cycle
// through sizes. The last block may be shorter. Blocks share signal's
// backing array.
func SplitBlocks(signal []float64, sizes ...int) [][]float64 {
	if len(sizes) == 0 {
		return [][]float64{signal}
	}

	var blocks [][]float64
	for pos, k := 0, 0; pos < len(signal); k++ {
		n := max(sizes[k%len(sizes)], 1)
		end := min(pos+n, len(signal))
		blocks = append(blocks, signal[pos:end])
		pos = end
	}

	return blocks
}
