package reverb

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/GeoffreyPlitt/debuggo"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

var debug = debuggo.Debug("reverb:schroeder")

// Schroeder is a stereo Schroeder reverberator.
//
// The input feeds a bank of parallel comb filters whose outputs are averaged.
// The mean is duplicated into two working buffers and each passes through its
// own chain of allpass filters, so the stereo image comes only from the
// differing allpass delays. Each side is then mixed as
//
//	out = level * (dry + wet*chain)
//
// where level is the master (mute) level and wet the wet ratio.
//
// ProcessBlock, ProcessSample, Reset and Close belong to the audio goroutine.
// SetWet, SetWetLevel, SetDecayTime and ToggleMute may be called from any
// goroutine; a new decay time reaches the combs at the start of the next
// block.
type Schroeder struct {
	sampleRate float64
	wetScale   float64
	diffusion  float64

	combs []*Comb
	left  []*Allpass
	right []*Allpass

	wetBits    atomic.Uint64
	decayBits  atomic.Uint64
	decayDirty atomic.Bool
	muted      atomic.Bool

	ramp  Ramp
	level float64

	wetL  []float64
	wetR  []float64
	gains []float64
}

// NewSchroeder creates a reverberator for the given sample rate and decay
// time (T60, seconds).
func NewSchroeder(sampleRate, decayTime float64, opts ...Option) (*Schroeder, error) {
	if !positiveFinite(sampleRate) {
		return nil, invalidf("schroeder sample rate must be > 0: %f", sampleRate)
	}

	if !positiveFinite(decayTime) {
		return nil, invalidf("schroeder decay time must be > 0: %f", decayTime)
	}

	cfg := defaultConfig(sampleRate)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Schroeder{
		sampleRate: sampleRate,
		wetScale:   cfg.wetScale,
		diffusion:  cfg.diffusion,
		ramp:       cfg.ramp,
		level:      1,
	}
	s.wetBits.Store(math.Float64bits(cfg.wet))
	s.decayBits.Store(math.Float64bits(decayTime))

	if err := s.buildCombs(cfg.combCount, decayTime); err != nil {
		return nil, err
	}

	if err := s.buildChains(cfg.allpassDelays[:2*cfg.chainLength]); err != nil {
		return nil, err
	}

	n := cfg.proc.BlockSize
	s.wetL = make([]float64, n)
	s.wetR = make([]float64, n)
	s.gains = make([]float64, n)

	debug("Schroeder initialized: sampleRate=%.0f decay=%.3fs combs=%d chain=%d wet=%.3f",
		sampleRate, decayTime, len(s.combs), len(s.left), cfg.wet)

	return s, nil
}

func (s *Schroeder) buildCombs(count int, decayTime float64) error {
	longest := combDelay(count-1, s.sampleRate)
	capacity := max(int(math.Ceil(combCapacitySeconds*s.sampleRate)), longest)

	s.combs = make([]*Comb, count)
	for i := range s.combs {
		c, err := NewComb(capacity)
		if err != nil {
			return err
		}

		if err := c.SetDelayLength(combDelay(i, s.sampleRate)); err != nil {
			return fmt.Errorf("comb %d: %w", i, err)
		}

		if err := c.SetFeedbackGain(decayTime, s.sampleRate); err != nil {
			return fmt.Errorf("comb %d: %w", i, err)
		}

		c.Clear()
		s.combs[i] = c
	}

	return nil
}

func (s *Schroeder) buildChains(delays []int) error {
	capacity := max(defaultAllpassCapacity, maxOf(delays))

	stages := len(delays) / 2
	s.left = make([]*Allpass, stages)
	s.right = make([]*Allpass, stages)

	for i, d := range delays {
		a, err := NewAllpass(capacity)
		if err != nil {
			return err
		}

		if err := a.SetDelayLength(d); err != nil {
			return fmt.Errorf("allpass %d: %w", i, err)
		}

		if err := a.SetGain(s.diffusion); err != nil {
			return fmt.Errorf("allpass %d: %w", i, err)
		}

		a.Clear()

		if i%2 == 0 {
			s.left[i/2] = a
		} else {
			s.right[i/2] = a
		}
	}

	return nil
}

// ProcessBlock renders one block. left and right must hold at least len(in)
// samples; only the first len(in) are written. in may alias left or right.
// An empty input is a no-op.
func (s *Schroeder) ProcessBlock(left, right, in []float64) error {
	if s.combs == nil {
		return fmt.Errorf("%w: schroeder engine closed", ErrUninitialized)
	}

	n := len(in)
	if n == 0 {
		return nil
	}

	if len(left) < n || len(right) < n {
		return invalidf("output blocks (%d, %d) shorter than input of %d", len(left), len(right), n)
	}

	s.applyDecay()
	s.grow(n)

	wetL := s.wetL[:n]
	wetR := s.wetR[:n]

	clear(wetL)
	for _, c := range s.combs {
		for i, x := range in {
			wetL[i] += c.ProcessSample(x)
		}
	}

	scale := 1 / float64(len(s.combs))
	for i := range wetL {
		wetL[i] *= scale
	}

	core.Duplicate(wetL, wetR)

	for _, a := range s.left {
		for i, x := range wetL {
			wetL[i] = a.ProcessSample(x)
		}
	}

	for _, a := range s.right {
		for i, x := range wetR {
			wetR[i] = a.ProcessSample(x)
		}
	}

	wet := s.Wet()
	target := s.MasterLevel()

	if s.level == target {
		mix(left[:n], right[:n], in, wetL, wetR, wet, target)
		return nil
	}

	gains := s.gains[:n]
	s.level = s.ramp.Advance(gains, s.level, target)

	mix(left[:n], right[:n], in, wetL, wetR, wet, 1)
	vecmath.MulBlockInPlace(left[:n], gains)
	vecmath.MulBlockInPlace(right[:n], gains)

	return nil
}

// Process renders in into newly allocated left and right blocks.
func (s *Schroeder) Process(in []float64) (left, right []float64, err error) {
	left = make([]float64, len(in))
	right = make([]float64, len(in))

	if err := s.ProcessBlock(left, right, in); err != nil {
		return nil, nil, err
	}

	return left, right, nil
}

// ProcessSample renders one sample. Its output is identical to ProcessBlock
// over the same input. A closed engine returns silence.
func (s *Schroeder) ProcessSample(input float64) (left, right float64) {
	if s.combs == nil {
		return 0, 0
	}

	s.applyDecay()

	var acc float64
	for _, c := range s.combs {
		acc += c.ProcessSample(input)
	}

	acc *= 1 / float64(len(s.combs))

	l, r := acc, acc
	for _, a := range s.left {
		l = a.ProcessSample(l)
	}

	for _, a := range s.right {
		r = a.ProcessSample(r)
	}

	wet := s.Wet()
	target := s.MasterLevel()

	if s.level == target {
		return target * (input + wet*l), target * (input + wet*r)
	}

	gain := s.gains[:1]
	s.level = s.ramp.Advance(gain, s.level, target)

	return (input + wet*l) * gain[0], (input + wet*r) * gain[0]
}

// Reset clears every delay line and settles the master level on its target.
func (s *Schroeder) Reset() {
	for _, c := range s.combs {
		c.Clear()
	}

	for _, a := range s.left {
		a.Clear()
	}

	for _, a := range s.right {
		a.Clear()
	}

	s.level = s.MasterLevel()
}

// Close releases all filters and work buffers. Later ProcessBlock calls
// fail with ErrUninitialized.
func (s *Schroeder) Close() {
	s.combs = nil
	s.left = nil
	s.right = nil
	s.wetL = nil
	s.wetR = nil
	s.gains = nil

	debug("Schroeder closed")
}

// SetWetLevel sets the wet ratio from a percentage: ratio = percent / WetScale().
func (s *Schroeder) SetWetLevel(percent float64) error {
	ratio := percent / s.wetScale
	if !validRatio(ratio) {
		return invalidf("schroeder wet level must be in [0, %g]: %f", s.wetScale, percent)
	}

	s.wetBits.Store(math.Float64bits(ratio))
	debug("wet level %.2f -> ratio %.4f", percent, ratio)

	return nil
}

// SetWet sets the wet ratio directly.
func (s *Schroeder) SetWet(ratio float64) error {
	if !validRatio(ratio) {
		return invalidf("schroeder wet ratio must be in [0, 1]: %f", ratio)
	}

	s.wetBits.Store(math.Float64bits(ratio))

	return nil
}

// SetDecayTime sets the T60 in seconds. Every comb gain is re-derived
// before the next block.
func (s *Schroeder) SetDecayTime(seconds float64) error {
	if !positiveFinite(seconds) {
		return invalidf("schroeder decay time must be > 0: %f", seconds)
	}

	s.decayBits.Store(math.Float64bits(seconds))
	s.decayDirty.Store(true)
	debug("decay time -> %.3fs", seconds)

	return nil
}

// ToggleMute flips between the active and muted states and reports whether
// the engine is now muted.
func (s *Schroeder) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			debug("muted=%t", !old)
			return !old
		}
	}
}

// Muted reports whether the engine is muted.
func (s *Schroeder) Muted() bool { return s.muted.Load() }

// MasterLevel returns the target output level: 0 when muted, 1 otherwise.
func (s *Schroeder) MasterLevel() float64 {
	if s.muted.Load() {
		return 0
	}

	return 1
}

// Wet returns the wet ratio.
func (s *Schroeder) Wet() float64 { return math.Float64frombits(s.wetBits.Load()) }

// WetScale returns the percentage divisor used by SetWetLevel.
func (s *Schroeder) WetScale() float64 { return s.wetScale }

// DecayTime returns the T60 in seconds.
func (s *Schroeder) DecayTime() float64 { return math.Float64frombits(s.decayBits.Load()) }

// SampleRate returns the sample rate in Hz.
func (s *Schroeder) SampleRate() float64 { return s.sampleRate }

// DiffusionGain returns the allpass gain.
func (s *Schroeder) DiffusionGain() float64 { return s.diffusion }

// CombCount returns the number of comb branches.
func (s *Schroeder) CombCount() int { return len(s.combs) }

// ChainLength returns the number of allpass stages per side.
func (s *Schroeder) ChainLength() int { return len(s.left) }

// CombDelays returns each comb's delay in samples.
func (s *Schroeder) CombDelays() []int {
	out := make([]int, len(s.combs))
	for i, c := range s.combs {
		out[i] = c.DelayLength()
	}

	return out
}

// CombGains returns the feedback gain each comb uses for the current decay
// time.
func (s *Schroeder) CombGains() []float64 {
	decay := s.DecayTime()

	out := make([]float64, len(s.combs))
	for i, c := range s.combs {
		out[i] = decayGain(c.DelayLength(), decay, s.sampleRate)
	}

	return out
}

// AllpassDelays returns the stage delays of the left and right chains.
func (s *Schroeder) AllpassDelays() (left, right []int) {
	left = make([]int, len(s.left))
	for i, a := range s.left {
		left[i] = a.DelayLength()
	}

	right = make([]int, len(s.right))
	for i, a := range s.right {
		right[i] = a.DelayLength()
	}

	return left, right
}

func (s *Schroeder) applyDecay() {
	if !s.decayDirty.Swap(false) {
		return
	}

	decay := s.DecayTime()
	for i, c := range s.combs {
		if err := c.SetFeedbackGain(decay, s.sampleRate); err != nil {
			debug("comb %d: %v", i, err)
		}
	}
}

func (s *Schroeder) grow(n int) {
	if n <= len(s.wetL) {
		return
	}

	s.wetL = core.Grow(s.wetL, n)
	s.wetR = core.Grow(s.wetR, n)
	s.gains = core.Grow(s.gains, n)
}

func mix(left, right, in, wetL, wetR []float64, wet, level float64) {
	for i, x := range in {
		l := level * (x + wet*wetL[i])
		r := level * (x + wet*wetR[i])
		left[i] = l
		right[i] = r
	}
}

// combDelay returns the delay of comb branch i in samples.
func combDelay(i int, sampleRate float64) int {
	return core.SecondsToSamples(combBaseSeconds+float64(i)*combStepSeconds, sampleRate)
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}

	return m
}
