package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair lies within eps. An eps of zero demands bit-exact output.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	d, idx, err := maxAbsDiffAt(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %g > %g)", idx, got[idx], want[idx], d, eps)
	}
}

// RequireWithinRelative fails t if got deviates from want by more than
// the fraction rel of want.
func RequireWithinRelative(t *testing.T, name string, got, want, rel float64) {
	t.Helper()

	if math.IsNaN(got) || math.Abs(got-want) > rel*math.Abs(want) {
		t.Fatalf("%s = %g, want %g within %.1f%%", name, got, want, 100*rel)
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSilent fails t unless every sample is zero.
func RequireSilent(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if v != 0 {
			t.Fatalf("index %d: got %v, want silence", i, v)
		}
	}
}

// RequireDecreasing fails t unless data[from:] is strictly decreasing.
func RequireDecreasing(t *testing.T, data []float64, from int) {
	t.Helper()

	for i := max(from, 0) + 1; i < len(data); i++ {
		if data[i] >= data[i-1] {
			t.Fatalf("index %d: %v is not below %v", i, data[i], data[i-1])
		}
	}
}

// MaxAbsDiff returns the largest absolute difference between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	d, _, err := maxAbsDiffAt(a, b)
	return d, err
}

func maxAbsDiffAt(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst, at := 0.0, 0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > worst || math.IsNaN(d) {
			worst, at = d, i
			if math.IsNaN(d) {
				return math.Inf(1), at, nil
			}
		}
	}

	return worst, at, nil
}
