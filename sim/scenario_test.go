package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarioSpec_Valid(t *testing.T) {
	path := writeScenarioFile(t, `
seed: 42
steps: 400
dt: 0.1
beta: 0.05
contact: 10.0
gamma: 0.25
initial:
  s: 990
  i: 10
  r: 0
ensemble:
  runs: 100
  workers: 4
output: trajectory.csv
`)

	spec, err := LoadScenarioSpec(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), spec.Seed)
	assert.Equal(t, 400, spec.Steps)
	assert.Equal(t, NewParameters(0.05, 10.0, 0.25, 0.1), spec.Parameters())
	assert.Equal(t, CompartmentState{S: 990, I: 10, R: 0}, spec.InitialState())
	require.NotNil(t, spec.Ensemble)
	assert.Equal(t, EnsembleConfig{Runs: 100, Workers: 4, Steps: 400}, spec.EnsembleConfig())
	assert.Equal(t, "trajectory.csv", spec.Output)
}

func TestLoadScenarioSpec_NoEnsembleBlock(t *testing.T) {
	path := writeScenarioFile(t, `
seed: 1
steps: 100
dt: 0.1
beta: 0.05
contact: 10.0
gamma: 0.25
initial:
  s: 99
  i: 1
  r: 0
`)

	spec, err := LoadScenarioSpec(path)
	require.NoError(t, err)
	assert.Nil(t, spec.Ensemble)
	assert.Equal(t, EnsembleConfig{Runs: 1, Steps: 100}, spec.EnsembleConfig())
}

func TestLoadScenarioSpec_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing rates", "seed: 1\nsteps: 100\ninitial:\n  s: 99\n  i: 1\n"},
		{"zero steps", "seed: 1\ndt: 0.1\nbeta: 0.05\ncontact: 10\ngamma: 0.25\ninitial:\n  s: 99\n  i: 1\n"},
		{"empty population", "seed: 1\nsteps: 100\ndt: 0.1\nbeta: 0.05\ncontact: 10\ngamma: 0.25\n"},
		{"bad ensemble", "seed: 1\nsteps: 100\ndt: 0.1\nbeta: 0.05\ncontact: 10\ngamma: 0.25\ninitial:\n  s: 99\n  i: 1\nensemble:\n  runs: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, tt.content)
			_, err := LoadScenarioSpec(path)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestLoadScenarioSpec_MalformedYAML(t *testing.T) {
	path := writeScenarioFile(t, "steps: [not a number\n")
	_, err := LoadScenarioSpec(path)
	require.Error(t, err)
}

func TestLoadScenarioSpec_MissingFile(t *testing.T) {
	_, err := LoadScenarioSpec(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
