package sim

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Kernel draws the per-step infection and recovery events of the SIR
// process. It owns an immutable Parameters and a private random stream; it
// never owns the compartment state it advances.
//
// The kernel operates with a one-step lag: each Step call first retires the
// event counts drawn on the previous call onto the shared state, then draws
// this step's counts from the post-application state. The caller applies the
// final draw itself after the loop ends (see Simulate).
type Kernel struct {
	params Parameters
	rng    *rand.Rand
}

// NewKernel validates params and binds the kernel to a random stream.
// The stream must not be shared with any concurrently running kernel.
func NewKernel(params Parameters, rng *rand.Rand) (*Kernel, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: kernel requires a random stream", ErrInvalidParameter)
	}
	return &Kernel{params: params, rng: rng}, nil
}

// Step applies prev to state, then draws and returns this step's events.
//
// The infection probability uses the force of infection beta*contact*I/N
// discretized over dt; the recovery probability discretizes gamma. Both
// draws are binomial with the post-application S and I as trial counts, so
// the returned counts can never exceed what the next Apply can consume.
// The two draws are conditionally independent given the pre-draw state.
func (k *Kernel) Step(prev EventCounts, state *CompartmentState) (EventCounts, error) {
	n := state.N()
	state.Apply(prev)
	if state.N() != n {
		return EventCounts{}, fmt.Errorf("%w: population drifted from %d to %d", ErrInvariantViolation, n, state.N())
	}
	if state.S < 0 || state.I < 0 || state.R < 0 {
		return EventCounts{}, fmt.Errorf("%w: negative compartment count (S=%d, I=%d, R=%d)", ErrInvariantViolation, state.S, state.I, state.R)
	}

	foi := k.params.Beta * k.params.Contact * float64(state.I) / float64(n)
	siProb := RateToProportion(foi, k.params.Dt)
	irProb := RateToProportion(k.params.Gamma, k.params.Dt)

	return EventCounts{
		Infections: k.binomial(state.S, siProb),
		Recoveries: k.binomial(state.I, irProb),
	}, nil
}

// binomial draws Binomial(n, p) from the kernel's stream. Binomial(0, p)
// is deterministically 0 and consumes no randomness, so an empty compartment
// never perturbs the stream.
func (k *Kernel) binomial(n int64, p float64) int64 {
	if n == 0 || p <= 0 {
		return 0
	}
	b := distuv.Binomial{N: float64(n), P: p, Src: k.rng}
	return int64(b.Rand())
}
