// Summarizes a completed trajectory for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about one completed trajectory.
// Useful for comparing parameter settings and for sanity-checking runs.
type Metrics struct {
	Steps            int   // number of transition steps taken
	FinalSusceptible int64 // S at the end of the run
	FinalInfected    int64 // I at the end of the run
	FinalRecovered   int64 // R at the end of the run
	PeakInfected     int64 // max I over the run
	PeakStep         int   // first step index at which I reached its peak

	// AttackRate is the fraction of the total population infected over the
	// run: (S[0] - S[final]) / N.
	AttackRate float64
}

// Summarize computes Metrics from a trajectory.
func Summarize(traj Trajectory) (*Metrics, error) {
	if len(traj) == 0 {
		return nil, fmt.Errorf("%w: cannot summarize an empty trajectory", ErrInvalidParameter)
	}
	first := traj.Initial()
	last := traj.Final()

	m := &Metrics{
		Steps:            len(traj) - 1,
		FinalSusceptible: last.S,
		FinalInfected:    last.I,
		FinalRecovered:   last.R,
	}
	for i, st := range traj {
		if st.I > m.PeakInfected {
			m.PeakInfected = st.I
			m.PeakStep = i
		}
	}
	m.AttackRate = float64(first.S-last.S) / float64(first.N())
	return m, nil
}

// Print displays aggregated metrics at the end of a simulation.
func (m *Metrics) Print(dt float64) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Steps                : %d (t = %.2f)\n", m.Steps, float64(m.Steps)*dt)
	fmt.Printf("Final Susceptible    : %d\n", m.FinalSusceptible)
	fmt.Printf("Final Infected       : %d\n", m.FinalInfected)
	fmt.Printf("Final Recovered      : %d\n", m.FinalRecovered)
	fmt.Printf("Peak Infected        : %d (at t = %.2f)\n", m.PeakInfected, float64(m.PeakStep)*dt)
	fmt.Printf("Attack Rate          : %.4f\n", m.AttackRate)
}
