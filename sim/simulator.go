// sim/simulator.go
package sim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gatesim/gatesim/sim/trace"
)

// Model names used in warnings and logs.
const (
	ModelZeroDelay = "zero-delay"
	ModelUnitDelay = "unit-delay"
)

// Result summarizes a finished run.
type Result struct {
	ZeroDelay     Signals // final settled zero-delay snapshot
	UnitDelay     Signals // final unit-delay snapshot
	ZeroDelayTime int64   // time of the last settled zero-delay row (before the trailing row)
	UnitDelayTime int64   // time of the last unit-delay row
	Steps         int     // propagation steps across both models
	// Warnings lists every stabilization that hit the iteration bound. Each
	// entry wraps ErrStabilizationBoundExceeded.
	Warnings []error
}

// Converged reports whether every stabilization reached a fixed point.
func (r *Result) Converged() bool { return len(r.Warnings) == 0 }

// Simulator drives the zero-delay and unit-delay models of one circuit in
// lockstep under a stimulus script. The two models share only the read-only
// circuit.
type Simulator struct {
	circuit *Circuit
	cfg     Config
	obs     Observer

	zero, delay           Signals
	zeroClock, delayClock int64
	zeroRec, delayRec     trace.Recorder
	counter               *stepCounter
	warnings              []error
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithObserver attaches an Observer to every propagation and stabilization.
func WithObserver(o Observer) Option {
	return func(sim *Simulator) { sim.obs = o }
}

// NewSimulator creates a simulator for c. cfg must be valid.
func NewSimulator(c *Circuit, cfg Config, opts ...Option) (*Simulator, error) {
	if c == nil {
		return nil, errors.New("nil circuit")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sim := &Simulator{circuit: c, cfg: cfg}
	for _, opt := range opts {
		opt(sim)
	}
	return sim, nil
}

// Config returns the simulator configuration.
func (sim *Simulator) Config() Config { return sim.cfg }

// Run executes program from the all-zero state, writing the zero-delay trace
// to zeroRec and the unit-delay trace to delayRec (nil recorders discard).
// Each call starts over, so repeated runs produce identical traces.
//
// After the last instruction the zero-delay model is settled and recorded
// (twice when Config.TrailingRow is set), and the unit-delay model is run
// tick by tick until it settles or hits the iteration bound.
func (sim *Simulator) Run(program []Instruction, zeroRec, delayRec trace.Recorder) (*Result, error) {
	sim.reset(zeroRec, delayRec)

	nets := sim.circuit.Nets()
	if err := sim.zeroRec.Begin(nets); err != nil {
		return nil, errors.Wrap(err, ModelZeroDelay)
	}
	if err := sim.delayRec.Begin(nets); err != nil {
		return nil, errors.Wrap(err, ModelUnitDelay)
	}

	for i, in := range program {
		if err := in.Execute(sim); err != nil {
			return nil, errors.Wrapf(err, "instruction %d (%v)", i+1, in)
		}
	}
	if err := sim.finish(); err != nil {
		return nil, err
	}

	if err := sim.zeroRec.End(); err != nil {
		return nil, errors.Wrap(err, ModelZeroDelay)
	}
	if err := sim.delayRec.End(); err != nil {
		return nil, errors.Wrap(err, ModelUnitDelay)
	}

	res := &Result{
		ZeroDelay:     sim.zero,
		UnitDelay:     sim.delay,
		ZeroDelayTime: sim.zeroClock,
		UnitDelayTime: sim.delayClock,
		Steps:         sim.counter.steps,
		Warnings:      sim.warnings,
	}
	logrus.Infof("[t=%d] Simulation ended after %d propagation steps, %d warning(s)",
		sim.delayClock, res.Steps, len(res.Warnings))
	return res, nil
}

func (sim *Simulator) reset(zeroRec, delayRec trace.Recorder) {
	if zeroRec == nil {
		zeroRec = trace.Discard
	}
	if delayRec == nil {
		delayRec = trace.Discard
	}
	sim.zero = sim.circuit.Initial()
	sim.delay = sim.circuit.Initial()
	sim.zeroClock, sim.delayClock = 0, 0
	sim.zeroRec, sim.delayRec = zeroRec, delayRec
	sim.counter = &stepCounter{next: sim.obs}
	sim.warnings = nil
}

func (sim *Simulator) assign(as []Assignment) error {
	zero, err := sim.zero.With(as...)
	if err != nil {
		return err
	}
	delay, err := sim.delay.With(as...)
	if err != nil {
		return err
	}
	sim.zero, sim.delay = zero, delay
	return nil
}

func (sim *Simulator) advance(ticks int) error {
	if err := sim.settleZero(); err != nil {
		return err
	}
	for i := 0; i < ticks; i++ {
		if err := record(sim.zeroRec, sim.zeroClock, sim.zero); err != nil {
			return errors.Wrap(err, ModelZeroDelay)
		}
		sim.zeroClock++
	}

	delay, t, err := advanceWithDelay(sim.circuit, sim.delay, ticks, sim.delayRec, sim.delayClock, sim.counter)
	if err != nil {
		return errors.Wrap(err, ModelUnitDelay)
	}
	sim.delay, sim.delayClock = delay, t
	return nil
}

func (sim *Simulator) finish() error {
	if err := sim.settleZero(); err != nil {
		return err
	}
	if err := record(sim.zeroRec, sim.zeroClock, sim.zero); err != nil {
		return errors.Wrap(err, ModelZeroDelay)
	}
	if sim.cfg.TrailingRow {
		if err := record(sim.zeroRec, sim.zeroClock+1, sim.zero); err != nil {
			return errors.Wrap(err, ModelZeroDelay)
		}
	}

	start := sim.delayClock
	delay, t, st, err := settleWithDelay(sim.circuit, sim.delay, sim.cfg.MaxIterations, sim.delayRec, start, sim.counter)
	if err != nil {
		return errors.Wrap(err, ModelUnitDelay)
	}
	if !st.Converged {
		sim.warn(ModelUnitDelay, start, st)
	}
	sim.delay, sim.delayClock = delay, t
	return nil
}

func (sim *Simulator) settleZero() error {
	zero, st, err := stabilize(sim.circuit, sim.zero, sim.cfg.MaxIterations, sim.counter)
	if err != nil {
		return errors.Wrap(err, ModelZeroDelay)
	}
	if !st.Converged {
		sim.warn(ModelZeroDelay, sim.zeroClock, st)
	}
	sim.zero = zero
	return nil
}

func (sim *Simulator) warn(model string, t int64, st Stabilization) {
	logrus.Warnf("Circuit did not stabilize in %d iterations (%s model, t=%d)", st.Steps, model, t)
	sim.warnings = append(sim.warnings,
		errors.Wrapf(ErrStabilizationBoundExceeded, "%s model at t=%d after %d steps", model, t, st.Steps))
}
