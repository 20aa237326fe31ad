// Package ir measures how an impulse response decays.
//
// Decay times come from least-squares fits to the Schroeder backward
// integral of the squared response:
//
//   - EDT: early decay time, fitted from 0 to -10 dB
//   - T20, T30: fitted from -5 to -25 dB and -5 to -35 dB
//   - RT60: T30, falling back to T20 for short or noisy tails
//
// Energy ratios (C50, C80, D50) and the centre time describe how much of
// the energy arrives early.
//
// # Usage
//
//	analyzer, err := ir.NewAnalyzer(48000)
//	if err != nil {
//		return err
//	}
//	metrics, err := analyzer.Analyze(response)
//	fmt.Printf("RT60 = %.2f s, C80 = %.1f dB\n", metrics.RT60, metrics.C80)
package ir
