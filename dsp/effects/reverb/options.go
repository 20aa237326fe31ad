package reverb

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

const (
	// DefaultWetScale converts a wet-level percentage into a ratio.
	DefaultWetScale = 100.0

	defaultCombCount   = 4
	maxCombCount       = 16
	defaultChainLength = 10

	// Comb branch i is delayed by combBaseSeconds + i*combStepSeconds.
	combBaseSeconds = 0.03
	combStepSeconds = 0.005

	combCapacitySeconds    = 0.1
	defaultAllpassCapacity = 1024

	defaultBlockSize = 64
)

// allpassDelays holds the allpass delays in samples. Stage k of the left
// chain uses entry 2k, stage k of the right chain entry 2k+1.
var allpassDelays = [...]int{
	262, 171, 355, 290, 748, 614, 739, 251, 162, 592,
	313, 790, 502, 616, 340, 85, 291, 681, 450, 52,
	336, 350, 736, 755, 350, 751, 485, 380, 615, 752,
	710, 309, 403, 399, 163, 183, 330, 597, 73, 226,
}

type config struct {
	proc          core.ProcessorConfig
	combCount     int
	chainLength   int
	allpassDelays []int
	diffusion     float64
	wetScale      float64
	wet           float64
	ramp          Ramp
}

func defaultConfig(sampleRate float64) config {
	return config{
		proc: core.ApplyProcessorOptions(
			core.WithSampleRate(sampleRate),
			core.WithBlockSize(defaultBlockSize),
		),
		combCount:     defaultCombCount,
		chainLength:   defaultChainLength,
		allpassDelays: allpassDelays[:],
		diffusion:     DefaultDiffusionGain,
		wetScale:      DefaultWetScale,
		ramp:          SnapRamp{},
	}
}

func (c *config) validate() error {
	if err := c.proc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	if c.combCount < 1 || c.combCount > maxCombCount {
		return invalidf("comb count must be in [1, %d]: %d", maxCombCount, c.combCount)
	}

	if c.chainLength < 1 || 2*c.chainLength > len(c.allpassDelays) {
		return invalidf("allpass chain length must be in [1, %d]: %d", len(c.allpassDelays)/2, c.chainLength)
	}

	for i, d := range c.allpassDelays[:2*c.chainLength] {
		if d < 1 {
			return invalidf("allpass delay %d must be >= 1: %d", i, d)
		}
	}

	if math.IsNaN(c.diffusion) || math.Abs(c.diffusion) >= 1 {
		return invalidf("allpass gain must be in (-1, 1): %f", c.diffusion)
	}

	if !positiveFinite(c.wetScale) {
		return invalidf("wet scale must be > 0: %f", c.wetScale)
	}

	if !validRatio(c.wet) {
		return invalidf("wet ratio must be in [0, 1]: %f", c.wet)
	}

	if c.ramp == nil {
		return invalidf("mute ramp must not be nil")
	}

	return nil
}

// Option configures a Schroeder engine at construction.
type Option func(*config)

// WithCombCount sets the number of parallel comb branches.
func WithCombCount(n int) Option {
	return func(c *config) { c.combCount = n }
}

// WithChainLength sets the number of allpass stages per stereo side.
func WithChainLength(n int) Option {
	return func(c *config) { c.chainLength = n }
}

// WithAllpassDelays replaces the allpass delay table. It must hold at least
// two entries per chain stage, interleaved left/right.
func WithAllpassDelays(delays []int) Option {
	return func(c *config) { c.allpassDelays = slices.Clone(delays) }
}

// WithDiffusionGain sets the gain shared by every allpass stage.
func WithDiffusionGain(g float64) Option {
	return func(c *config) { c.diffusion = g }
}

// WithWetScale sets the divisor SetWetLevel applies to percentages.
func WithWetScale(scale float64) Option {
	return func(c *config) { c.wetScale = scale }
}

// WithWet sets the initial wet ratio in [0, 1].
func WithWet(ratio float64) Option {
	return func(c *config) { c.wet = ratio }
}

// WithMuteRamp replaces the hard mute by a ramped transition.
func WithMuteRamp(r Ramp) Option {
	return func(c *config) { c.ramp = r }
}

// WithBlockSize pre-allocates work buffers for blocks of n samples.
// Larger blocks are still accepted and grow the buffers once.
func WithBlockSize(n int) Option {
	return func(c *config) { core.WithBlockSize(n)(&c.proc) }
}

func validRatio(v float64) bool {
	return v >= 0 && v <= 1
}
