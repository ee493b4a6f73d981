// Package sim provides the gate-level logic simulation engine for gatesim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - gate.go, signals.go: the six gate operations and immutable net snapshots
//   - circuit.go: Propagate, one synchronous step of every gate against the previous snapshot
//   - stabilize.go, delay.go: the zero-delay (settle to a fixed point) and unit-delay
//     (one step per tick) time policies built on Propagate
//   - event.go, simulator.go: stimulus instructions and the driver running both models in lockstep
//
// # Architecture
//
// The sim package owns the engine; sub-packages hold what surrounds it:
//   - sim/trace/: the Recorder interface, in-memory and CSV recorders, trace summaries
//   - sim/batch/: test-case discovery and the concurrent batch runner
//   - sim/metrics/: Prometheus collectors implementing Observer
//
// Stabilization is bounded by Config.MaxIterations. A circuit that does not
// settle (an oscillating feedback loop, for instance) is not an error: the
// latest snapshot is used and the run's Result carries a warning wrapping
// ErrStabilizationBoundExceeded.
package sim
