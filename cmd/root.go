package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/epi-sim/epi-sim/sim"
)

var (
	// CLI flags shared across subcommands
	seed         int64   // Seed for the partitioned random streams
	logLevel     string  // Log verbosity level
	scenarioPath string  // Optional scenario YAML; flags override nothing when set
	steps        int     // Number of discrete transition steps
	dt           float64 // Time step size
	beta         float64 // Transmission probability per infectious contact
	contact      float64 // Contact rate per individual per unit time
	gamma        float64 // Recovery rate
	s0           int64   // Initial susceptible count
	i0           int64   // Initial infected count
	r0           int64   // Initial recovered count
	outputPath   string  // Optional CSV trajectory output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epi-sim",
	Short: "Discrete-time stochastic SIR epidemic simulator",
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveScenario builds the effective scenario from a YAML file when
// --scenario is set, otherwise from the individual CLI flags.
func resolveScenario() *sim.ScenarioSpec {
	if scenarioPath != "" {
		spec, err := sim.LoadScenarioSpec(scenarioPath)
		if err != nil {
			logrus.Fatalf("unable to load scenario: %v", err)
		}
		return spec
	}
	spec := &sim.ScenarioSpec{
		Seed:    seed,
		Steps:   steps,
		Dt:      dt,
		Beta:    beta,
		Contact: contact,
		Gamma:   gamma,
		Initial: sim.InitialSpec{S: s0, I: i0, R: r0},
		Output:  outputPath,
	}
	if err := spec.Validate(); err != nil {
		logrus.Fatalf("invalid simulation flags: %v", err)
	}
	return spec
}

// runCmd executes a single trajectory using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single stochastic SIR trajectory",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		spec := resolveScenario()

		logrus.Infof("Starting simulation with N=%d (S=%d, I=%d, R=%d), steps=%d, dt=%v",
			spec.InitialState().N(), spec.Initial.S, spec.Initial.I, spec.Initial.R, spec.Steps, spec.Dt)

		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed))
		traj, err := sim.Simulate(spec.InitialState(), spec.Parameters(), spec.Steps, rng.ForSubsystem(sim.SubsystemKernel))
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		metrics, err := sim.Summarize(traj)
		if err != nil {
			logrus.Fatalf("unable to summarize trajectory: %v", err)
		}
		metrics.Print(spec.Dt)

		if spec.Output != "" {
			if err := sim.WriteCSVFile(spec.Output, traj, spec.Dt); err != nil {
				logrus.Fatalf("unable to write trajectory: %v", err)
			}
			logrus.Infof("Trajectory written to %s", spec.Output)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSimulationFlags registers the shared simulation flags on a subcommand.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random event draws")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file (overrides the flags below)")

	// SIR model configs
	cmd.Flags().IntVar(&steps, "steps", 400, "Number of discrete transition steps")
	cmd.Flags().Float64Var(&dt, "dt", 0.1, "Time step size")
	cmd.Flags().Float64Var(&beta, "beta", 0.05, "Transmission probability per infectious contact")
	cmd.Flags().Float64Var(&contact, "contact", 10.0, "Contact rate per individual per unit time")
	cmd.Flags().Float64Var(&gamma, "gamma", 0.25, "Recovery rate")

	// Initial compartment counts
	cmd.Flags().Int64Var(&s0, "susceptible", 990, "Initial susceptible count")
	cmd.Flags().Int64Var(&i0, "infected", 10, "Initial infected count")
	cmd.Flags().Int64Var(&r0, "recovered", 0, "Initial recovered count")

	cmd.Flags().StringVar(&outputPath, "output", "", "CSV trajectory output path")
}

// init sets up CLI flags and subcommands
func init() {
	addSimulationFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}
