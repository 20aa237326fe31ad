package reverb

import "math"

// rampSettle is the distance at which an exponential ramp snaps to its target.
const rampSettle = 1e-5

// Ramp moves the master level toward a target.
//
// Advance fills gains with the level to apply to each of the next len(gains)
// samples, starting from current, and returns the level reached after the
// last one.
type Ramp interface {
	Advance(gains []float64, current, target float64) float64
}

// SnapRamp jumps to the target on the first sample. This is the hard mute.
type SnapRamp struct{}

// Advance implements Ramp.
func (SnapRamp) Advance(gains []float64, _, target float64) float64 {
	for i := range gains {
		gains[i] = target
	}

	return target
}

// LinearRamp moves at a constant rate, covering a full 0-to-1 swing in the
// configured number of samples.
type LinearRamp struct {
	step float64
}

// NewLinearRamp returns a linear ramp lasting samples for a full swing.
func NewLinearRamp(samples int) (LinearRamp, error) {
	if samples < 1 {
		return LinearRamp{}, invalidf("linear ramp length must be >= 1: %d", samples)
	}

	return LinearRamp{step: 1 / float64(samples)}, nil
}

// Advance implements Ramp.
func (r LinearRamp) Advance(gains []float64, current, target float64) float64 {
	level := current
	for i := range gains {
		switch {
		case level < target:
			level = math.Min(level+r.step, target)
		case level > target:
			level = math.Max(level-r.step, target)
		}
		gains[i] = level
	}

	return level
}

// ExponentialRamp approaches the target with a one-pole smoother whose time
// constant is the configured number of samples.
type ExponentialRamp struct {
	coeff float64
}

// NewExponentialRamp returns an exponential ramp with the given time constant.
func NewExponentialRamp(samples int) (ExponentialRamp, error) {
	if samples < 1 {
		return ExponentialRamp{}, invalidf("exponential ramp time constant must be >= 1: %d", samples)
	}

	return ExponentialRamp{coeff: math.Exp(-1 / float64(samples))}, nil
}

// Advance implements Ramp.
func (r ExponentialRamp) Advance(gains []float64, current, target float64) float64 {
	level := current
	for i := range gains {
		level = target + (level-target)*r.coeff
		if math.Abs(level-target) < rampSettle {
			level = target
		}
		gains[i] = level
	}

	return level
}
