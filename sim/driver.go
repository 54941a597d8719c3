package sim

import (
	"context"
	"fmt"
	"math/rand"
)

// Trajectory is the sequence of compartment states produced by one run,
// one entry per step plus the initial state. Immutable once returned.
type Trajectory []CompartmentState

// Initial returns the first state of the trajectory.
func (t Trajectory) Initial() CompartmentState { return t[0] }

// Final returns the last state of the trajectory.
func (t Trajectory) Final() CompartmentState { return t[len(t)-1] }

// EventTrajectory is the per-step event counts of one run, one entry per step.
type EventTrajectory []EventCounts

// Simulate runs nSteps transition steps from initial and returns the
// compartment trajectory of length nSteps+1: entry 0 is the initial state,
// entry i the state after step i, and the final entry includes the last
// step's draw (the final flush of the kernel's one-step lag).
//
// The caller's initial value is never mutated; each run works on its own
// copy. Determinism: the trajectory is a pure function of initial, params,
// nSteps, and the stream state of rng.
func Simulate(initial CompartmentState, params Parameters, nSteps int, rng *rand.Rand) (Trajectory, error) {
	return SimulateContext(context.Background(), initial, params, nSteps, rng)
}

// SimulateContext is Simulate with cooperative cancellation. The context is
// checked only between kernel steps, never inside one, so a cancelled run
// never leaves a half-applied state behind. A cancelled run returns the
// context error and no partial trajectory.
func SimulateContext(ctx context.Context, initial CompartmentState, params Parameters, nSteps int, rng *rand.Rand) (Trajectory, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if nSteps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidParameter, nSteps)
	}
	kernel, err := NewKernel(params, rng)
	if err != nil {
		return nil, err
	}

	state := initial
	traj := make(Trajectory, 0, nSteps+1)
	traj = append(traj, state)

	var ev EventCounts
	for step := 0; step < nSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err = kernel.Step(ev, &state)
		if err != nil {
			return nil, err
		}
		// The kernel holds this step's draw back until the next call; fold
		// it into the recorded entry now so traj[step+1] is the post-step state.
		next := state
		next.Apply(ev)
		traj = append(traj, next)
	}

	// Final flush: retire the last draw onto the working state and confirm
	// it lands exactly on the recorded tail.
	state.Apply(ev)
	if state != traj[len(traj)-1] {
		return nil, fmt.Errorf("%w: flushed state %+v diverged from recorded trajectory tail %+v", ErrInvariantViolation, state, traj[len(traj)-1])
	}
	return traj, nil
}

// SimulateEvents runs nSteps transition steps and returns the raw per-step
// event counts instead of reconstructed compartment states. The returned
// slice has exactly nSteps entries; entry i holds the events drawn on step i.
func SimulateEvents(initial CompartmentState, params Parameters, nSteps int, rng *rand.Rand) (EventTrajectory, error) {
	return SimulateEventsContext(context.Background(), initial, params, nSteps, rng)
}

// SimulateEventsContext is SimulateEvents with cooperative cancellation,
// checked only at step boundaries.
func SimulateEventsContext(ctx context.Context, initial CompartmentState, params Parameters, nSteps int, rng *rand.Rand) (EventTrajectory, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if nSteps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidParameter, nSteps)
	}
	kernel, err := NewKernel(params, rng)
	if err != nil {
		return nil, err
	}

	state := initial
	events := make(EventTrajectory, 0, nSteps)

	var ev EventCounts
	for step := 0; step < nSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ev, err = kernel.Step(ev, &state)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Reconstruct folds an event trajectory over an initial state, producing the
// compartment trajectory the same run would have recorded. Useful when only
// event counts were kept and the compartment view is needed after the fact.
func Reconstruct(initial CompartmentState, events EventTrajectory) (Trajectory, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	traj := make(Trajectory, 0, len(events)+1)
	state := initial
	traj = append(traj, state)
	n := initial.N()
	for i, ev := range events {
		state.Apply(ev)
		if state.S < 0 || state.I < 0 || state.R < 0 {
			return nil, fmt.Errorf("%w: step %d drives a compartment negative (S=%d, I=%d, R=%d)", ErrInvariantViolation, i, state.S, state.I, state.R)
		}
		if state.N() != n {
			return nil, fmt.Errorf("%w: step %d drifts population from %d to %d", ErrInvariantViolation, i, n, state.N())
		}
		traj = append(traj, state)
	}
	return traj, nil
}
