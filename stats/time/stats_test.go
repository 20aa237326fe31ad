package time

import (
	"math"
	"testing"
)

const tolerance = 1e-10

// generateSquare creates a +val/-val alternating square wave.
func generateSquare(val float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = val
		} else {
			out[i] = -val
		}
	}
	return out
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{name: "empty", signal: nil, want: 0},
		{name: "square", signal: generateSquare(0.5, 64), want: 0.5},
		{name: "dc", signal: []float64{2, 2, 2}, want: 2},
		{name: "mixed", signal: []float64{3, 4}, want: math.Sqrt(12.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.signal); math.Abs(got-tt.want) > tolerance {
				t.Fatalf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak() = %v, want 0.7", got)
	}
	if got := Peak(nil); got != 0 {
		t.Fatalf("Peak(nil) = %v, want 0", got)
	}
}

func TestZeroCrossings(t *testing.T) {
	if got := ZeroCrossings(generateSquare(1, 10)); got != 9 {
		t.Fatalf("ZeroCrossings() = %d, want 9", got)
	}
	// passing through zero counts once, touching zero not at all
	if got := ZeroCrossings([]float64{1, 0, -1}); got != 1 {
		t.Fatalf("ZeroCrossings() = %d, want 1", got)
	}
	if got := ZeroCrossings([]float64{0, 0, 1, 0, 1, -2}); got != 1 {
		t.Fatalf("ZeroCrossings() = %d, want 1", got)
	}
	if got := ZeroCrossings(nil); got != 0 {
		t.Fatalf("ZeroCrossings(nil) = %d, want 0", got)
	}
}

func TestWindowRMS(t *testing.T) {
	signal := []float64{1, 1, 2, 2, 3, 3, 9}
	got := WindowRMS(signal, 2)

	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Fatalf("window %d: got %v, want %v", i, got[i], want[i])
		}
	}

	if WindowRMS(signal, 0) != nil {
		t.Fatal("expected nil for zero window")
	}
}

func TestRMSdB(t *testing.T) {
	if got := RMSdB(generateSquare(0.1, 8)); math.Abs(got+20) > 1e-9 {
		t.Fatalf("RMSdB() = %v, want -20", got)
	}
	if !math.IsInf(RMSdB(make([]float64, 4)), -1) {
		t.Fatal("expected -Inf for silence")
	}
}

func TestCrestFactor(t *testing.T) {
	if got := CrestFactor(generateSquare(0.3, 16)); math.Abs(got) > tolerance {
		t.Fatalf("square crest factor = %v dB, want 0", got)
	}

	// One spike in four samples: peak 1, RMS 0.5.
	if got := CrestFactor([]float64{0, 1, 0, 0}); math.Abs(got-20*math.Log10(2)) > tolerance {
		t.Fatalf("spike crest factor = %v dB, want %v", got, 20*math.Log10(2))
	}

	if got := CrestFactor(make([]float64, 8)); got != 0 {
		t.Fatalf("silence crest factor = %v, want 0", got)
	}
}
