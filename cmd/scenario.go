package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/epi-sim/epi-sim/sim"
)

// scenarioCmd validates a scenario file and prints its effective settings
var scenarioCmd = &cobra.Command{
	Use:   "scenario <file>",
	Short: "Validate and describe a scenario YAML file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec, err := sim.LoadScenarioSpec(args[0])
		if err != nil {
			logrus.Fatalf("invalid scenario: %v", err)
		}

		initial := spec.InitialState()
		fmt.Println("=== Scenario ===")
		fmt.Printf("Seed                 : %d\n", spec.Seed)
		fmt.Printf("Steps                : %d (t = %.2f)\n", spec.Steps, float64(spec.Steps)*spec.Dt)
		fmt.Printf("Rates                : beta=%v contact=%v gamma=%v dt=%v\n", spec.Beta, spec.Contact, spec.Gamma, spec.Dt)
		fmt.Printf("Initial State        : S=%d I=%d R=%d (N=%d)\n", initial.S, initial.I, initial.R, initial.N())
		if spec.Ensemble != nil {
			fmt.Printf("Ensemble             : %d runs, workers=%d\n", spec.Ensemble.Runs, spec.Ensemble.Workers)
		}
		if spec.Output != "" {
			fmt.Printf("Output               : %s\n", spec.Output)
		}
	},
}

func init() {
	scenarioCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(scenarioCmd)
}
