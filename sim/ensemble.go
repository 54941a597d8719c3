package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// RunResult holds the outcome of a single ensemble member.
type RunResult struct {
	Run          int
	Final        CompartmentState
	PeakInfected int64
	PeakStep     int
}

// SummaryStats aggregates one scalar outcome across ensemble members.
type SummaryStats struct {
	Mean   float64
	StdDev float64
	P50    float64
	P90    float64
}

// EnsembleResult is the outcome of an independent-trajectory ensemble.
// Runs is ordered by run index, so the result is identical regardless of
// how the members were scheduled across workers.
type EnsembleResult struct {
	Runs           []RunResult
	FinalRecovered SummaryStats
	PeakInfected   SummaryStats
}

// RunEnsemble executes cfg.Runs independent trajectories concurrently and
// summarizes their outcomes. Every member clones the initial state and draws
// from its own seed-derived stream (SubsystemTrajectory), so members never
// share mutable state or generator state, and the full result is a
// deterministic function of (initial, params, cfg, key).
//
// cfg.Workers bounds concurrency; 0 means one goroutine per run.
func RunEnsemble(ctx context.Context, initial CompartmentState, params Parameters, cfg EnsembleConfig, key SimulationKey) (*EnsembleResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Derive all member streams up front on this goroutine; PartitionedRNG
	// itself is not safe for concurrent use.
	prng := NewPartitionedRNG(key)
	rngs := make([]*rand.Rand, cfg.Runs)
	for i := 0; i < cfg.Runs; i++ {
		rngs[i] = prng.ForSubsystem(SubsystemTrajectory(i))
	}

	results := make([]RunResult, cfg.Runs)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := 0; i < cfg.Runs; i++ {
		g.Go(func() error {
			traj, err := SimulateContext(ctx, initial, params, cfg.Steps, rngs[i])
			if err != nil {
				return fmt.Errorf("ensemble run %d: %w", i, err)
			}
			m, err := Summarize(traj)
			if err != nil {
				return fmt.Errorf("ensemble run %d: %w", i, err)
			}
			results[i] = RunResult{
				Run:          i,
				Final:        traj.Final(),
				PeakInfected: m.PeakInfected,
				PeakStep:     m.PeakStep,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finalR := make([]float64, cfg.Runs)
	peakI := make([]float64, cfg.Runs)
	for i, r := range results {
		finalR[i] = float64(r.Final.R)
		peakI[i] = float64(r.PeakInfected)
	}

	return &EnsembleResult{
		Runs:           results,
		FinalRecovered: summarize(finalR),
		PeakInfected:   summarize(peakI),
	}, nil
}

// Print displays ensemble summary statistics.
func (r *EnsembleResult) Print() {
	fmt.Println("=== Ensemble Metrics ===")
	fmt.Printf("Runs                 : %d\n", len(r.Runs))
	fmt.Printf("Final Recovered      : mean=%.1f stddev=%.1f p50=%.0f p90=%.0f\n",
		r.FinalRecovered.Mean, r.FinalRecovered.StdDev, r.FinalRecovered.P50, r.FinalRecovered.P90)
	fmt.Printf("Peak Infected        : mean=%.1f stddev=%.1f p50=%.0f p90=%.0f\n",
		r.PeakInfected.Mean, r.PeakInfected.StdDev, r.PeakInfected.P50, r.PeakInfected.P90)
}

// summarize computes SummaryStats over one outcome variable.
// stat.Quantile requires sorted input.
func summarize(values []float64) SummaryStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return SummaryStats{
		Mean:   stat.Mean(sorted, nil),
		StdDev: stat.StdDev(sorted, nil),
		P50:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}
