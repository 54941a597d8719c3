package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testParams() Parameters {
	return NewParameters(0.05, 10.0, 0.25, 0.1)
}

func TestNewKernel_RejectsBadInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewKernel(Parameters{}, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewKernel with zero params = %v, want ErrInvalidParameter", err)
	}
	if _, err := NewKernel(testParams(), nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewKernel with nil rng = %v, want ErrInvalidParameter", err)
	}
}

func TestKernel_StepAppliesPreviousEvents(t *testing.T) {
	// The kernel retires the previous step's draw before drawing anew.
	rng := rand.New(rand.NewSource(42))
	kernel, err := NewKernel(testParams(), rng)
	require.NoError(t, err)

	state := CompartmentState{S: 100, I: 10, R: 0}
	_, err = kernel.Step(EventCounts{Infections: 5, Recoveries: 2}, &state)
	require.NoError(t, err)

	require.Equal(t, CompartmentState{S: 95, I: 13, R: 2}, state)
}

func TestKernel_DrawsBoundedByCompartments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kernel, err := NewKernel(testParams(), rng)
	require.NoError(t, err)

	state := CompartmentState{S: 50, I: 20, R: 0}
	for i := 0; i < 5000; i++ {
		ev, err := kernel.Step(EventCounts{}, &state)
		require.NoError(t, err)
		if ev.Infections < 0 || ev.Infections > state.S {
			t.Fatalf("draw %d: infections %d outside [0, %d]", i, ev.Infections, state.S)
		}
		if ev.Recoveries < 0 || ev.Recoveries > state.I {
			t.Fatalf("draw %d: recoveries %d outside [0, %d]", i, ev.Recoveries, state.I)
		}
	}
}

func TestKernel_EmptyCompartmentsDrawZero(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kernel, err := NewKernel(testParams(), rng)
	require.NoError(t, err)

	// S = 0: no trials for infection. I = 0 additionally zeroes the
	// infection probability, so both draws are deterministically 0.
	state := CompartmentState{S: 0, I: 0, R: 100}
	for i := 0; i < 100; i++ {
		ev, err := kernel.Step(EventCounts{}, &state)
		require.NoError(t, err)
		require.Equal(t, EventCounts{}, ev)
	}
}

func TestKernel_NoInfectionsWithoutInfected(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kernel, err := NewKernel(testParams(), rng)
	require.NoError(t, err)

	// I = 0 makes the force of infection zero even with many susceptibles.
	state := CompartmentState{S: 1000, I: 0, R: 0}
	for i := 0; i < 100; i++ {
		ev, err := kernel.Step(EventCounts{}, &state)
		require.NoError(t, err)
		require.Equal(t, EventCounts{}, ev)
	}
}

func TestKernel_DrawMeansMatchProbabilities(t *testing.T) {
	// With a zero prev the state is held fixed, so repeated Step calls are
	// i.i.d. binomial draws whose empirical means must match n*p.
	rng := rand.New(rand.NewSource(42))
	params := testParams()
	kernel, err := NewKernel(params, rng)
	require.NoError(t, err)

	state := CompartmentState{S: 900, I: 100, R: 0}
	n := 20000
	var sumInf, sumRec int64
	for i := 0; i < n; i++ {
		ev, err := kernel.Step(EventCounts{}, &state)
		require.NoError(t, err)
		sumInf += ev.Infections
		sumRec += ev.Recoveries
	}

	foi := params.Beta * params.Contact * float64(state.I) / float64(state.N())
	wantInf := float64(state.S) * RateToProportion(foi, params.Dt)
	wantRec := float64(state.I) * RateToProportion(params.Gamma, params.Dt)

	gotInf := float64(sumInf) / float64(n)
	gotRec := float64(sumRec) / float64(n)
	if math.Abs(gotInf-wantInf)/wantInf > 0.05 {
		t.Errorf("mean infections = %.3f, want ≈ %.3f (within 5%%)", gotInf, wantInf)
	}
	if math.Abs(gotRec-wantRec)/wantRec > 0.05 {
		t.Errorf("mean recoveries = %.3f, want ≈ %.3f (within 5%%)", gotRec, wantRec)
	}
}

func TestKernel_DetectsNegativeCompartment(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kernel, err := NewKernel(testParams(), rng)
	require.NoError(t, err)

	// A prev draw larger than S is impossible under the binomial bound; if
	// one ever arrives it must surface as an invariant violation.
	state := CompartmentState{S: 1, I: 0, R: 0}
	_, err = kernel.Step(EventCounts{Infections: 5}, &state)
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestKernel_DeterministicGivenStream(t *testing.T) {
	run := func() []EventCounts {
		rng := rand.New(rand.NewSource(99))
		kernel, err := NewKernel(testParams(), rng)
		require.NoError(t, err)
		state := CompartmentState{S: 990, I: 10, R: 0}
		var out []EventCounts
		var ev EventCounts
		for i := 0; i < 50; i++ {
			ev, err = kernel.Step(ev, &state)
			require.NoError(t, err)
			out = append(out, ev)
		}
		return out
	}

	require.Equal(t, run(), run())
}
