// Package sim provides a discrete-time stochastic SIR epidemic simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - state.go: CompartmentState (S, I, R counts) and the per-step event accounting
//   - kernel.go: the binomial transition kernel that draws infections and recoveries
//   - driver.go: the step loop that produces full trajectories
//
// # Architecture
//
// The continuous-time SIR rates (transmission, contact, recovery) are
// discretized into per-step event probabilities via the exponential CDF
// (rate.go). Each step the kernel draws the number of new infections and
// new recoveries as independent binomial variables conditioned on the
// pre-step compartment counts, and the driver folds those draws back into
// the state under exact population conservation.
//
// Randomness is seed-partitioned (rng.go): the same SimulationKey always
// reproduces the same trajectory, and every ensemble member gets its own
// isolated stream so concurrent runs never share generator state.
//
// Supporting pieces:
//   - ensemble.go: concurrent independent-trajectory execution with summary statistics
//   - metrics.go: per-trajectory summary (final sizes, peak infected, attack rate)
//   - scenario.go: YAML scenario loading and validation
//   - output.go: CSV trajectory export for external plotting
package sim
