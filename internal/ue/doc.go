// Package ue implements the windowed significance-to-event projection at the
// heart of unitary event visualization, together with the raster layout it
// feeds.
//
// The package is a set of pure functions and immutable values:
//
//  1. GenerateWindows turns a recording span and window/step sizes into the
//     ordered sequence of analysis window starts.
//  2. SelectSignificant (and SelectLowerTail) compare the per-window joint
//     surprise against a threshold and return the significant window indices.
//  3. Projector intersects a trial's coincidence indices with the significant
//     windows and returns the deduplicated, ascending unitary event indices.
//  4. PlanLayout assigns every (neuron, trial) pair a raster row and computes
//     the shared ticks and block separators.
//
// # Time Base
//
// Every time value inside this package is a time.Duration (integer
// nanoseconds). Normalize converts an ir.Document into an Analysis once, at
// the boundary; unknown or incompatible units fail there with UNIT_MISMATCH
// instead of producing silently wrong window memberships later. Window
// membership is therefore an exact integer comparison:
//
//	start <= index*binSize < start+windowSize
//
// # Concurrency
//
// Nothing here holds mutable state. A Projector may be shared by any number
// of goroutines projecting different trials.
package ue
