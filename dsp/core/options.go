package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by ProcessorConfig.Validate.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// Processor defaults.
const (
	DefaultSampleRate = 48000.0
	DefaultBlockSize  = 256
)

// ProcessorConfig holds the stream settings shared by processors: the fixed
// sample rate and the expected block size.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns 48 kHz with 256-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BlockSize:  DefaultBlockSize,
	}
}

// WithSampleRate sets the sample rate. Non-positive or non-finite rates are
// ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && !math.IsInf(sampleRate, 0) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the expected block size. Values below 1 are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether the config describes a usable stream.
func (c ProcessorConfig) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %f", ErrInvalidConfig, c.SampleRate)
	}

	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	}

	return nil
}

// BlockDuration returns the length of one block in seconds.
func (c ProcessorConfig) BlockDuration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return float64(c.BlockSize) / c.SampleRate
}
