package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/epi-sim/epi-sim/sim"
)

var (
	ensembleRuns    int // Number of independent trajectories
	ensembleWorkers int // Max concurrently running trajectories (0 = unbounded)
)

// ensembleCmd runs many independent trajectories and summarizes outcomes
var ensembleCmd = &cobra.Command{
	Use:   "ensemble",
	Short: "Run an ensemble of independent SIR trajectories",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec := resolveScenario()

		cfg := sim.EnsembleConfig{Runs: ensembleRuns, Workers: ensembleWorkers, Steps: spec.Steps}
		if spec.Ensemble != nil && !cmd.Flags().Changed("runs") {
			cfg.Runs = spec.Ensemble.Runs
			cfg.Workers = spec.Ensemble.Workers
		}

		logrus.Infof("Starting ensemble: %d runs x %d steps, workers=%d", cfg.Runs, cfg.Steps, cfg.Workers)

		result, err := sim.RunEnsemble(context.Background(), spec.InitialState(), spec.Parameters(), cfg, sim.NewSimulationKey(spec.Seed))
		if err != nil {
			logrus.Fatalf("ensemble failed: %v", err)
		}
		result.Print()

		logrus.Info("Ensemble complete.")
	},
}

func init() {
	addSimulationFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 100, "Number of independent trajectories")
	ensembleCmd.Flags().IntVar(&ensembleWorkers, "workers", 0, "Max concurrent trajectories (0 = one goroutine per run)")
	rootCmd.AddCommand(ensembleCmd)
}
