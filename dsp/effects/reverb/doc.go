// Package reverb provides a Schroeder reverberator and the filter units it is
// built from.
//
// Included processors:
//   - Comb: Recursive comb filter whose feedback gain is derived from a T60 target.
//   - Allpass: Schroeder allpass diffuser with a fixed gain.
//   - Schroeder: Parallel comb bank into two serial allpass chains, producing
//     a stereo wet signal mixed with the dry input.
//
// The processing methods do not allocate once the engine has seen its
// largest block and are intended to be driven from a single audio goroutine.
// Parameter setters on Schroeder may be called from another goroutine.
package reverb
