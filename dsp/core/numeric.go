package core

import "math"

// denormalFloor bounds the magnitude below which feedback state is zeroed.
const denormalFloor = 1e-30

// FlushDenormals returns zero for |x| below denormalFloor and x otherwise.
// Recirculating filters call it on every write so a decaying tail reaches
// exact silence instead of lingering in the subnormal range.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}

	return x
}

// SecondsToSamples converts a duration to a whole number of samples,
// rounding down.
func SecondsToSamples(seconds, sampleRate float64) int {
	return int(math.Floor(seconds * sampleRate))
}

// DBToLinear converts a level in dB to an amplitude ratio, 20*log10
// convention. A loop losing 60 dB per pass has gain DBToLinear(-60).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	default:
		return 20 * math.Log10(linear)
	}
}
