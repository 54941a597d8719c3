package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_HandBuiltTrajectory(t *testing.T) {
	traj := Trajectory{
		{S: 90, I: 10, R: 0},
		{S: 80, I: 18, R: 2},
		{S: 60, I: 35, R: 5},
		{S: 50, I: 30, R: 20},
		{S: 45, I: 20, R: 35},
	}

	m, err := Summarize(traj)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Steps)
	assert.Equal(t, int64(45), m.FinalSusceptible)
	assert.Equal(t, int64(20), m.FinalInfected)
	assert.Equal(t, int64(35), m.FinalRecovered)
	assert.Equal(t, int64(35), m.PeakInfected)
	assert.Equal(t, 2, m.PeakStep)
	assert.InDelta(t, 0.45, m.AttackRate, 1e-12) // (90-45)/100
}

func TestSummarize_ConstantTrajectory(t *testing.T) {
	traj := Trajectory{
		{S: 100, I: 0, R: 0},
		{S: 100, I: 0, R: 0},
	}

	m, err := Summarize(traj)
	require.NoError(t, err)

	assert.Equal(t, int64(0), m.PeakInfected)
	assert.Equal(t, 0, m.PeakStep)
	assert.Equal(t, 0.0, m.AttackRate)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(Trajectory{})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}
