// Package signal generates deterministic excitation signals for driving and
// measuring processors.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-schroeder/dsp/core"
)

// ErrInvalidSignal is returned for unusable generator arguments.
var ErrInvalidSignal = errors.New("signal: invalid argument")

// Kind names an excitation signal.
type Kind string

// Supported excitation kinds.
const (
	KindImpulse Kind = "impulse"
	KindNoise   Kind = "noise"
	KindSine    Kind = "sine"
)

// Kinds lists every supported kind.
func Kinds() []Kind { return []Kind{KindImpulse, KindNoise, KindSine} }

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}

	return "", fmt.Errorf("%w: unknown signal kind %q", ErrInvalidSignal, name)
}

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg       core.ProcessorConfig
	seed      int64
	amplitude float64
	freqHz    float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithAmplitude sets the peak level used by Generate. Default 1.
func WithAmplitude(amplitude float64) Option {
	return func(g *Generator) { g.amplitude = amplitude }
}

// WithFrequency sets the sine frequency used by Generate. Default 1 kHz.
func WithFrequency(hz float64) Option {
	return func(g *Generator) { g.freqHz = hz }
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:       core.ApplyProcessorOptions(coreOpts...),
		seed:      1,
		amplitude: 1,
		freqHz:    1000,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Generate produces samples of the given kind using the generator's
// amplitude and frequency.
func (g *Generator) Generate(kind Kind, samples int) ([]float64, error) {
	switch kind {
	case KindImpulse:
		return g.Impulse(g.amplitude, samples)
	case KindNoise:
		return g.WhiteNoise(g.amplitude, samples)
	case KindSine:
		return g.Sine(g.freqHz, g.amplitude, samples)
	default:
		return nil, fmt.Errorf("%w: unknown signal kind %q", ErrInvalidSignal, kind)
	}
}

// Impulse generates a single sample of the given amplitude followed by
// silence.
func (g *Generator) Impulse(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: impulse samples must be > 0: %d", ErrInvalidSignal, samples)
	}
	out := make([]float64, samples)
	out[0] = amplitude
	return out, nil
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: sine samples must be > 0: %d", ErrInvalidSignal, samples)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("%w: sine frequency must be in [0, %g]: %f", ErrInvalidSignal, g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: noise samples must be > 0: %d", ErrInvalidSignal, samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("%w: noise amplitude must be >= 0: %f", ErrInvalidSignal, amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Normalize scales data in place to the target peak amplitude. Silent input
// is left untouched.
func Normalize(data []float64, targetPeak float64) error {
	if targetPeak < 0 {
		return fmt.Errorf("%w: normalize target peak must be >= 0: %f", ErrInvalidSignal, targetPeak)
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	if maxAbs == 0 {
		return nil
	}

	scale := targetPeak / maxAbs
	for i := range data {
		data[i] *= scale
	}
	return nil
}
