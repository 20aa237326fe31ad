package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-schroeder/dsp/delay"
)

// DefaultDiffusionGain is the allpass gain used by the Schroeder topology.
const DefaultDiffusionGain = 0.1

// Allpass is a Schroeder allpass diffuser.
//
// The line is fed input + delayed*gain and the output is
// delayed - gain*input, which smears transients over the delay length
// while leaving the magnitude response close to flat.
type Allpass struct {
	line *delay.Line
	gain float64
}

// NewAllpass returns an allpass filter able to hold delays of up to capacity
// samples, using DefaultDiffusionGain.
func NewAllpass(capacity int) (*Allpass, error) {
	line, err := delay.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: allpass: %w", ErrInvalidParameter, err)
	}

	return &Allpass{line: line, gain: DefaultDiffusionGain}, nil
}

// SetDelayLength sets the delay in samples and rewinds the line.
func (a *Allpass) SetDelayLength(samples int) error {
	if err := a.line.SetLength(samples); err != nil {
		return fmt.Errorf("%w: allpass: %w", ErrInvalidParameter, err)
	}

	return nil
}

// SetGain sets the feedback/feedforward gain. |g| must be < 1.
func (a *Allpass) SetGain(g float64) error {
	if math.IsNaN(g) || math.Abs(g) >= 1 {
		return invalidf("allpass gain must be in (-1, 1): %f", g)
	}

	a.gain = g

	return nil
}

// Gain returns the diffusion gain.
func (a *Allpass) Gain() float64 { return a.gain }

// DelayLength returns the delay in samples.
func (a *Allpass) DelayLength() int { return a.line.Len() }

// Capacity returns the longest delay the filter can hold.
func (a *Allpass) Capacity() int { return a.line.Capacity() }

// Clear zeroes the delay line.
func (a *Allpass) Clear() {
	a.line.Clear()
}

// ProcessSample processes one sample.
func (a *Allpass) ProcessSample(input float64) float64 {
	delayed := a.line.Delayed()
	a.line.Write(input + delayed*a.gain)

	return delayed - a.gain*input
}

// ProcessBlock filters src into dst. dst may alias src, which is how the
// engine chains stages in place.
func (a *Allpass) ProcessBlock(dst, src []float64) error {
	if a.line.Len() == 0 {
		return fmt.Errorf("%w: allpass", ErrUninitialized)
	}

	if err := checkBlock(dst, src); err != nil {
		return err
	}

	for i, x := range src {
		dst[i] = a.ProcessSample(x)
	}

	return nil
}
