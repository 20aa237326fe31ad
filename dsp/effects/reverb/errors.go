package reverb

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by filter and engine configuration.
var (
	ErrInvalidParameter = errors.New("reverb: invalid parameter")
	ErrUninitialized    = errors.New("reverb: delay length not set")
)

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

func checkBlock(dst, src []float64) error {
	if len(dst) < len(src) {
		return invalidf("output block of %d samples shorter than input of %d", len(dst), len(src))
	}

	return nil
}
