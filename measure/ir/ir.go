package ir

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by decay analysis.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidTime       = errors.New("ir: time must be positive")
	ErrInvalidRange      = errors.New("ir: invalid fit range")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

// defaultFloorDB bounds the decay curve once the remaining energy is exhausted.
const defaultFloorDB = -200.0

// Range is a level span on the decay curve, in dB relative to the total
// energy. Upper must lie above Lower.
type Range struct {
	Upper float64
	Lower float64
}

// Standard fit spans.
var (
	EDTRange = Range{Upper: 0, Lower: -10}
	T20Range = Range{Upper: -5, Lower: -25}
	T30Range = Range{Upper: -5, Lower: -35}
)

// Fit is a least-squares line through one span of a decay curve.
type Fit struct {
	Start       int     // first sample of the span
	End         int     // last sample of the span
	Slope       float64 // dB per second
	Correlation float64 // Pearson r of the fitted points, -1 for a perfect decay
}

// DecayTime extrapolates the fitted slope to a 60 dB drop. It is zero when
// the span does not decay.
func (f Fit) DecayTime() float64 {
	if f.Slope >= 0 {
		return 0
	}

	return -60 / f.Slope
}

// Metrics holds decay and energy-ratio measurements of one impulse response.
type Metrics struct {
	RT60       float64 // T30, or T20 when the curve does not reach -35 dB
	EDT        float64 // early decay time from the 0 to -10 dB span
	T20        float64
	T30        float64
	C50        float64 // clarity at 50 ms in dB
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // early energy fraction at 50 ms
	CenterTime float64 // energy centroid in seconds
	PeakIndex  int     // sample index of the absolute maximum
	Fit        Fit     // the fit RT60 was taken from
}

// Analyzer measures decay behaviour of impulse responses at a fixed sample
// rate.
type Analyzer struct {
	sampleRate float64
	floorDB    float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFloor sets the level the decay curve is clamped to where no energy
// remains. Values above -60 dB are ignored.
func WithFloor(db float64) Option {
	return func(a *Analyzer) {
		if db <= -60 {
			a.floorDB = db
		}
	}
}

// NewAnalyzer creates an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64, opts ...Option) (*Analyzer, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	a := &Analyzer{sampleRate: sampleRate, floorDB: defaultFloorDB}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a, nil
}

// SampleRate returns the analyzer's sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Analyze measures ir from its absolute peak onward.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	peak := findPeak(ir)
	tail := ir[peak:]
	curve := a.decayCurve(tail)

	m := Metrics{
		PeakIndex:  peak,
		CenterTime: a.centerTime(tail),
		C50:        a.clarity(tail, 50),
		C80:        a.clarity(tail, 80),
		D50:        a.definition(tail, 50),
	}

	if f, ok := a.fit(curve, EDTRange); ok {
		m.EDT = f.DecayTime()
	}

	if f, ok := a.fit(curve, T20Range); ok {
		m.T20 = f.DecayTime()
		m.RT60 = m.T20
		m.Fit = f
	}

	if f, ok := a.fit(curve, T30Range); ok && f.DecayTime() > 0 {
		m.T30 = f.DecayTime()
		m.RT60 = m.T30
		m.Fit = f
	}

	return m, nil
}

// DecayCurve returns the Schroeder backward integral of ir in dB:
//
//	S[n] = 10*log10( sum_{k>=n} h[k]^2 / sum_k h[k]^2 )
//
// The curve starts at 0 dB and never rises. A silent input yields a curve
// at the floor level.
func (a *Analyzer) DecayCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	return a.decayCurve(ir), nil
}

func (a *Analyzer) decayCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		curve[i] = acc
	}

	total := curve[0]
	for i, e := range curve {
		if total <= 0 || e <= 0 {
			curve[i] = a.floorDB
			continue
		}

		curve[i] = math.Max(10*math.Log10(e/total), a.floorDB)
	}

	return curve
}

// FitDecay fits a line through the part of curve inside r. The span starts
// at the first sample at or below r.Upper and ends at the first following
// sample at or below r.Lower.
func (a *Analyzer) FitDecay(curve []float64, r Range) (Fit, error) {
	if len(curve) == 0 {
		return Fit{}, ErrEmptyIR
	}

	if !(r.Upper > r.Lower) {
		return Fit{}, fmt.Errorf("%w: [%g, %g] dB", ErrInvalidRange, r.Upper, r.Lower)
	}

	f, ok := a.fit(curve, r)
	if !ok {
		return Fit{}, fmt.Errorf("%w: curve does not span [%g, %g] dB", ErrNoDecay, r.Upper, r.Lower)
	}

	return f, nil
}

func (a *Analyzer) fit(curve []float64, r Range) (Fit, bool) {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= r.Upper {
			start = i
		}

		if start >= 0 && v <= r.Lower {
			end = i
			break
		}
	}

	if start < 0 || end <= start {
		return Fit{}, false
	}

	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i-start) / a.sampleRate
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumYY += y * y
		sumXY += x * y
	}

	n := float64(end - start + 1)
	sxx := n*sumXX - sumX*sumX
	syy := n*sumYY - sumY*sumY
	sxy := n*sumXY - sumX*sumY

	if sxx == 0 {
		return Fit{}, false
	}

	f := Fit{Start: start, End: end, Slope: sxy / sxx}
	if syy > 0 {
		f.Correlation = sxy / math.Sqrt(sxx*syy)
	}

	return f, true
}

// RT60 returns the reverberation time of ir, from the T30 span when the
// curve reaches -35 dB and from the T20 span otherwise. Unlike Analyze it
// does not skip samples ahead of the peak.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	curve := a.decayCurve(ir)

	for _, r := range []Range{T30Range, T20Range} {
		if f, ok := a.fit(curve, r); ok {
			if rt := f.DecayTime(); rt > 0 {
				return rt, nil
			}
		}
	}

	return 0, ErrNoDecay
}

// Definition returns the fraction of energy arriving before timeMs.
func (a *Analyzer) Definition(ir []float64, timeMs float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if !(timeMs > 0) {
		return 0, fmt.Errorf("%w: %f ms", ErrInvalidTime, timeMs)
	}

	return a.definition(ir, timeMs), nil
}

func (a *Analyzer) definition(ir []float64, timeMs float64) float64 {
	early, late := a.split(ir, timeMs)
	if early+late <= 0 {
		return 0
	}

	return early / (early + late)
}

// Clarity returns the early-to-late energy ratio at timeMs in dB.
func (a *Analyzer) Clarity(ir []float64, timeMs float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	if !(timeMs > 0) {
		return 0, fmt.Errorf("%w: %f ms", ErrInvalidTime, timeMs)
	}

	return a.clarity(ir, timeMs), nil
}

func (a *Analyzer) clarity(ir []float64, timeMs float64) float64 {
	early, late := a.split(ir, timeMs)

	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}

	return 10 * math.Log10(early/late)
}

// split sums the energy before and after the boundary at timeMs.
func (a *Analyzer) split(ir []float64, timeMs float64) (early, late float64) {
	boundary := min(max(int(math.Round(timeMs*0.001*a.sampleRate)), 0), len(ir))

	for _, v := range ir[:boundary] {
		early += v * v
	}

	for _, v := range ir[boundary:] {
		late += v * v
	}

	return early, late
}

// CenterTime returns the energy centroid of ir in seconds.
func (a *Analyzer) CenterTime(ir []float64) (float64, error) {
	if len(ir) == 0 {
		return 0, ErrEmptyIR
	}

	return a.centerTime(ir), nil
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) * e
		den += e
	}

	if den <= 0 {
		return 0
	}

	return num / den / a.sampleRate
}

func findPeak(ir []float64) int {
	idx := 0
	peak := 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			peak = av
			idx = i
		}
	}

	return idx
}
