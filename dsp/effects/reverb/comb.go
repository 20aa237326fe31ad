package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-schroeder/dsp/core"
	"github.com/cwbudde/algo-schroeder/dsp/delay"
)

// Comb is a recursive comb filter.
//
// Each step outputs the delayed sample and writes input + delayed*gain back
// into the line, so an impulse produces echoes of 1, g, g², ... spaced by the
// delay length.
type Comb struct {
	line *delay.Line
	gain float64

	decaySeconds float64
	sampleRate   float64
}

// NewComb returns a comb filter able to hold delays of up to capacity samples.
func NewComb(capacity int) (*Comb, error) {
	line, err := delay.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: comb: %w", ErrInvalidParameter, err)
	}

	return &Comb{line: line}, nil
}

// SetDelayLength sets the loop delay in samples and rewinds the line.
// The feedback gain is re-derived when a decay time has been set.
func (c *Comb) SetDelayLength(samples int) error {
	if err := c.line.SetLength(samples); err != nil {
		return fmt.Errorf("%w: comb: %w", ErrInvalidParameter, err)
	}

	if c.decaySeconds > 0 {
		c.gain = decayGain(samples, c.decaySeconds, c.sampleRate)
	}

	return nil
}

// SetFeedbackGain derives the feedback gain so that the loop decays by 60 dB
// after decaySeconds at the given sample rate:
//
//	g = 10^(-3 * delayLength / (decaySeconds * sampleRate))
func (c *Comb) SetFeedbackGain(decaySeconds, sampleRate float64) error {
	if !positiveFinite(decaySeconds) {
		return invalidf("comb decay time must be > 0: %f", decaySeconds)
	}

	if !positiveFinite(sampleRate) {
		return invalidf("comb sample rate must be > 0: %f", sampleRate)
	}

	if c.line.Len() == 0 {
		return fmt.Errorf("%w: comb gain needs a delay length", ErrUninitialized)
	}

	c.decaySeconds = decaySeconds
	c.sampleRate = sampleRate
	c.gain = decayGain(c.line.Len(), decaySeconds, sampleRate)

	return nil
}

// FeedbackGain returns the current loop gain.
func (c *Comb) FeedbackGain() float64 { return c.gain }

// DelayLength returns the loop delay in samples.
func (c *Comb) DelayLength() int { return c.line.Len() }

// Capacity returns the longest delay the filter can hold.
func (c *Comb) Capacity() int { return c.line.Capacity() }

// Clear zeroes the delay line.
func (c *Comb) Clear() {
	c.line.Clear()
}

// ProcessSample processes one sample.
func (c *Comb) ProcessSample(input float64) float64 {
	delayed := c.line.Delayed()
	c.line.Write(core.FlushDenormals(input + delayed*c.gain))

	return delayed
}

// ProcessBlock filters src into dst. dst may alias src.
func (c *Comb) ProcessBlock(dst, src []float64) error {
	if c.line.Len() == 0 {
		return fmt.Errorf("%w: comb", ErrUninitialized)
	}

	if err := checkBlock(dst, src); err != nil {
		return err
	}

	for i, x := range src {
		dst[i] = c.ProcessSample(x)
	}

	return nil
}

func decayGain(delaySamples int, decaySeconds, sampleRate float64) float64 {
	return core.DBToLinear(-60 * float64(delaySamples) / (decaySeconds * sampleRate))
}
