package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter reports a malformed input: non-positive rates,
	// negative compartment counts, an empty population, or a non-positive
	// step count.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvariantViolation reports a broken internal invariant, such as a
	// population sum drifting from its initial value. It indicates a
	// programming error, never a recoverable condition.
	ErrInvariantViolation = errors.New("invariant violation")
)

// CompartmentState holds the susceptible, infected, and recovered counts of
// a closed population. The sum S+I+R is fixed at simulation start and must
// never change. It is a value type: assignment is a deep copy, so a driver
// can snapshot it per step without aliasing.
type CompartmentState struct {
	S int64
	I int64
	R int64
}

// N returns the total population size.
func (s CompartmentState) N() int64 {
	return s.S + s.I + s.R
}

// Apply folds one step's event counts into the state:
// infections move S -> I, recoveries move I -> R.
// The population sum is conserved exactly.
func (s *CompartmentState) Apply(ev EventCounts) {
	s.S -= ev.Infections
	s.I += ev.Infections - ev.Recoveries
	s.R += ev.Recoveries
}

// Validate rejects states that cannot start a simulation: any negative
// compartment count, or a zero total population (which would make the
// infection probability undefined).
func (s CompartmentState) Validate() error {
	if s.S < 0 || s.I < 0 || s.R < 0 {
		return fmt.Errorf("%w: negative compartment count (S=%d, I=%d, R=%d)", ErrInvalidParameter, s.S, s.I, s.R)
	}
	if s.N() == 0 {
		return fmt.Errorf("%w: population size must be positive", ErrInvalidParameter)
	}
	return nil
}

// EventCounts holds the number of transition events drawn on one step.
// Both counts are non-negative; Infections is bounded by the pre-step S and
// Recoveries by the pre-step I, so applying them can never drive a
// compartment negative.
type EventCounts struct {
	Infections int64
	Recoveries int64
}
