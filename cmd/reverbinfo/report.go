package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/GeoffreyPlitt/debuggo"

	"github.com/cwbudde/algo-schroeder/dsp/core"
	"github.com/cwbudde/algo-schroeder/dsp/effects/reverb"
	"github.com/cwbudde/algo-schroeder/dsp/signal"
	"github.com/cwbudde/algo-schroeder/internal/cli"
	"github.com/cwbudde/algo-schroeder/measure/ir"
	"github.com/cwbudde/algo-schroeder/measure/response"
	timestats "github.com/cwbudde/algo-schroeder/stats/time"
)

var debug = debuggo.Debug("reverbinfo")

const (
	rippleLowHz  = 20.0
	rippleHighHz = 20000.0
)

// run renders the configured excitation and writes the report to w.
func run(w io.Writer, args *CLI) error {
	if args.Block < 1 {
		return fmt.Errorf("block size must be >= 1: %d", args.Block)
	}

	fs := args.SampleRate
	if !(fs > 0) || math.IsInf(fs, 0) {
		return fmt.Errorf("sample rate must be > 0: %f", fs)
	}

	samples := core.SecondsToSamples(args.Duration.Seconds(), fs)
	if samples < 1 {
		return fmt.Errorf("duration %v is shorter than one sample", args.Duration)
	}

	window := core.SecondsToSamples(args.Window.Seconds(), fs)
	if window < 1 || window > samples {
		return fmt.Errorf("level window %v must lie within the duration %v", args.Window, args.Duration)
	}

	kind, err := signal.ParseKind(args.Signal)
	if err != nil {
		return err
	}

	opts := []reverb.Option{
		reverb.WithCombCount(args.Combs),
		reverb.WithChainLength(args.Chain),
		reverb.WithDiffusionGain(args.Diffusion),
		reverb.WithWetScale(args.WetScale),
		reverb.WithBlockSize(args.Block),
	}

	engine, err := reverb.NewSchroeder(fs, args.Decay, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.SetWetLevel(args.Wet); err != nil {
		return err
	}

	gen := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(fs), core.WithBlockSize(args.Block)},
		signal.WithFrequency(args.Frequency),
	)

	in, err := gen.Generate(kind, samples)
	if err != nil {
		return err
	}

	if err := signal.Normalize(in, args.Peak); err != nil {
		return err
	}

	left, right, err := render(engine, in, args.Block)
	if err != nil {
		return err
	}

	// The decay metrics come from the wet path alone, excited by a unit
	// impulse, whatever signal the level report uses.
	probe, err := reverb.NewSchroeder(fs, args.Decay, append(opts, reverb.WithWet(1))...)
	if err != nil {
		return err
	}
	defer probe.Close()

	impulse, err := gen.Impulse(1, samples)
	if err != nil {
		return err
	}

	wetL, wetR, err := render(probe, impulse, args.Block)
	if err != nil {
		return err
	}

	for i, x := range impulse {
		wetL[i] -= x
		wetR[i] -= x
	}

	debug("rendered %d samples of %s in blocks of %d", samples, kind, args.Block)

	cli.PrintTitle(w, "Schroeder reverberator")
	cli.PrintKeyValue(w, "Sample rate", "%.0f Hz", fs)
	cli.PrintKeyValue(w, "Decay time", "%.3f s", engine.DecayTime())
	cli.PrintKeyValue(w, "Wet", "%.1f%% of %g (ratio %.3f)", args.Wet, engine.WetScale(), engine.Wet())
	cli.PrintKeyValue(w, "Block", "%d samples (%.2f ms)", gen.Config().BlockSize, 1000*gen.Config().BlockDuration())
	cli.PrintKeyValue(w, "Signal", "%s, %d samples, peak %.3f", kind, samples, args.Peak)

	if err := printTopology(w, engine); err != nil {
		return err
	}

	if err := printDecay(w, fs, wetL, wetR); err != nil {
		return err
	}

	if err := printResponse(w, fs, wetL, wetR); err != nil {
		return err
	}

	return printLevels(w, fs, window, left, right)
}

// render drives s block by block over in.
func render(s *reverb.Schroeder, in []float64, block int) (left, right []float64, err error) {
	left = make([]float64, len(in))
	right = make([]float64, len(in))

	for start := 0; start < len(in); start += block {
		end := min(start+block, len(in))
		if err := s.ProcessBlock(left[start:end], right[start:end], in[start:end]); err != nil {
			return nil, nil, err
		}
	}

	return left, right, nil
}

func printTopology(w io.Writer, s *reverb.Schroeder) error {
	cli.PrintSection(w, "Comb filters")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Comb\tDelay [samples]\tDelay [ms]\tGain\n")
	fmt.Fprintf(tw, "----\t---------------\t----------\t----\n")

	gains := s.CombGains()
	for i, d := range s.CombDelays() {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.6f\n", i, d, 1000*float64(d)/s.SampleRate(), gains[i])
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	cli.PrintSection(w, fmt.Sprintf("Allpass chains (g = %.3f)", s.DiffusionGain()))

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Stage\tLeft [samples]\tRight [samples]\n")
	fmt.Fprintf(tw, "-----\t--------------\t---------------\n")

	left, right := s.AllpassDelays()
	for i := range left {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", i, left[i], right[i])
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

func printDecay(w io.Writer, fs float64, wetL, wetR []float64) error {
	analyzer, err := ir.NewAnalyzer(fs)
	if err != nil {
		return err
	}

	cli.PrintSection(w, "Wet decay")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Side\tRT60 [s]\tEDT [s]\tT20 [s]\tT30 [s]\tC80 [dB]\tD50\tCentre [ms]\n")
	fmt.Fprintf(tw, "----\t--------\t-------\t-------\t-------\t--------\t---\t-----------\n")

	for _, side := range []struct {
		name string
		wet  []float64
	}{{"left", wetL}, {"right", wetR}} {
		m, err := analyzer.Analyze(side.wet)
		if err != nil {
			return fmt.Errorf("%s: %w", side.name, err)
		}

		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.2f\t%.3f\t%.1f\n",
			side.name, m.RT60, m.EDT, m.T20, m.T30, m.C80, m.D50, 1000*m.CenterTime)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

func printResponse(w io.Writer, fs float64, wetL, wetR []float64) error {
	hi := math.Min(rippleHighHz, fs/2)

	cli.PrintSection(w, fmt.Sprintf("Wet response (%.0f Hz to %.0f Hz)", rippleLowHz, hi))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Side\tMin [dB]\tMax [dB]\tRipple [dB]\n")
	fmt.Fprintf(tw, "----\t--------\t--------\t-----------\n")

	for _, side := range []struct {
		name string
		wet  []float64
	}{{"left", wetL}, {"right", wetR}} {
		r, err := response.Analyze(side.wet, fs)
		if err != nil {
			return fmt.Errorf("%s: %w", side.name, err)
		}

		lo, top, ok := r.Range(rippleLowHz, hi)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", side.name)
			continue
		}

		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n", side.name, lo, top, top-lo)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	return nil
}

func printLevels(w io.Writer, fs float64, window int, left, right []float64) error {
	cli.PrintSection(w, fmt.Sprintf("Output level per %.0f ms", 1000*float64(window)/fs))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tStart [ms]\tLeft [dB]\tRight [dB]\n")
	fmt.Fprintf(tw, "------\t----------\t---------\t----------\n")

	rmsL := timestats.WindowRMS(left, window)
	rmsR := timestats.WindowRMS(right, window)
	for i := range rmsL {
		fmt.Fprintf(tw, "%d\t%.0f\t%.1f\t%.1f\n",
			i, 1000*float64(i*window)/fs, core.LinearToDB(rmsL[i]), core.LinearToDB(rmsR[i]))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	cli.PrintKeyValue(w, "Peak", "%.1f dB / %.1f dB",
		core.LinearToDB(timestats.Peak(left)), core.LinearToDB(timestats.Peak(right)))
	cli.PrintKeyValue(w, "Crest factor", "%.1f dB / %.1f dB",
		timestats.CrestFactor(left), timestats.CrestFactor(right))

	return nil
}
