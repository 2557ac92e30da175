package core

import "math"

// Diffuser converts a fractional per-step rate (for example 2.3 children per
// segment) into an integer sequence whose running average converges to the
// rate. The rounding error of each step is carried into the next, so the
// emitted counts interleave (2,2,3,2,...) instead of clustering the way
// naive per-step rounding would.
//
// Each consumer owns its own Diffuser: one per stem for substems, one for
// leaves, one for splits. The zero value is ready for use.
type Diffuser struct {
	carry float64
}

// Next returns the integer count for one step at the given rate and folds
// the rounding error back into the accumulator.
func (d *Diffuser) Next(rate float64) int {
	n := int(math.Round(rate + d.carry))
	if n < 0 {
		n = 0
	}
	d.carry -= float64(n) - rate
	return n
}

// Reset clears the carried error.
func (d *Diffuser) Reset() { d.carry = 0 }
