package sim

import "fmt"

// Parameters groups the continuous-time rates of the SIR process and the
// discretization step. Immutable for the lifetime of a simulation.
type Parameters struct {
	Beta    float64 // transmission probability per infectious contact (must be > 0)
	Contact float64 // contact rate per individual per unit time (must be > 0)
	Gamma   float64 // recovery rate (must be > 0)
	Dt      float64 // discrete time step (must be > 0)
}

// NewParameters groups the SIR rate parameters and step size.
func NewParameters(beta, contact, gamma, dt float64) Parameters {
	return Parameters{Beta: beta, Contact: contact, Gamma: gamma, Dt: dt}
}

// Validate rejects any non-positive field.
func (p Parameters) Validate() error {
	if p.Beta <= 0 {
		return fmt.Errorf("%w: beta must be positive, got %v", ErrInvalidParameter, p.Beta)
	}
	if p.Contact <= 0 {
		return fmt.Errorf("%w: contact rate must be positive, got %v", ErrInvalidParameter, p.Contact)
	}
	if p.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidParameter, p.Gamma)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidParameter, p.Dt)
	}
	return nil
}

// EnsembleConfig groups ensemble execution parameters.
type EnsembleConfig struct {
	Runs    int // number of independent trajectories (must be > 0)
	Workers int // max concurrently running trajectories (0 = one per run)
	Steps   int // steps per trajectory (must be > 0)
}

// Validate rejects non-positive run or step counts. Workers may be zero,
// meaning no concurrency limit.
func (c EnsembleConfig) Validate() error {
	if c.Runs <= 0 {
		return fmt.Errorf("%w: ensemble runs must be positive, got %d", ErrInvalidParameter, c.Runs)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: ensemble steps must be positive, got %d", ErrInvalidParameter, c.Steps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: ensemble workers must be non-negative, got %d", ErrInvalidParameter, c.Workers)
	}
	return nil
}
