package sim

import "math"

// RateToProportion converts a continuous-time hazard rate into the
// probability that at least one event occurs within a step of length dt,
// assuming a constant-rate exponential process:
//
//	p = 1 - exp(-rate * dt)
//
// For rate >= 0 and dt > 0 the result lies in [0, 1), is monotonically
// increasing in both arguments, and approaches 1 as rate*dt grows.
func RateToProportion(rate, dt float64) float64 {
	return 1.0 - math.Exp(-rate*dt)
}
