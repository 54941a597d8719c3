package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScenarioSpec is the top-level simulation configuration.
// Loaded from YAML via LoadScenarioSpec(path).
type ScenarioSpec struct {
	Seed    int64   `yaml:"seed"`
	Steps   int     `yaml:"steps"`
	Dt      float64 `yaml:"dt"`
	Beta    float64 `yaml:"beta"`
	Contact float64 `yaml:"contact"`
	Gamma   float64 `yaml:"gamma"`

	Initial  InitialSpec   `yaml:"initial"`
	Ensemble *EnsembleSpec `yaml:"ensemble,omitempty"`
	Output   string        `yaml:"output,omitempty"` // CSV trajectory path (optional)
}

// InitialSpec holds the initial compartment counts.
type InitialSpec struct {
	S int64 `yaml:"s"`
	I int64 `yaml:"i"`
	R int64 `yaml:"r"`
}

// EnsembleSpec configures an optional ensemble run.
type EnsembleSpec struct {
	Runs    int `yaml:"runs"`
	Workers int `yaml:"workers,omitempty"` // 0 = one goroutine per run
}

// LoadScenarioSpec reads and validates a scenario YAML file.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var spec ScenarioSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return &spec, nil
}

// Validate checks the full scenario: rates, step count, initial state, and
// the ensemble block if present.
func (s *ScenarioSpec) Validate() error {
	if err := s.Parameters().Validate(); err != nil {
		return err
	}
	if s.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidParameter, s.Steps)
	}
	if err := s.InitialState().Validate(); err != nil {
		return err
	}
	if s.Ensemble != nil {
		return s.EnsembleConfig().Validate()
	}
	return nil
}

// Parameters returns the rate parameters of the scenario.
func (s *ScenarioSpec) Parameters() Parameters {
	return NewParameters(s.Beta, s.Contact, s.Gamma, s.Dt)
}

// InitialState returns the initial compartment counts of the scenario.
func (s *ScenarioSpec) InitialState() CompartmentState {
	return CompartmentState{S: s.Initial.S, I: s.Initial.I, R: s.Initial.R}
}

// EnsembleConfig returns the ensemble execution config, or a single-run
// config when the scenario has no ensemble block.
func (s *ScenarioSpec) EnsembleConfig() EnsembleConfig {
	cfg := EnsembleConfig{Runs: 1, Steps: s.Steps}
	if s.Ensemble != nil {
		cfg.Runs = s.Ensemble.Runs
		cfg.Workers = s.Ensemble.Workers
	}
	return cfg
}
