package sim

import (
	"github.com/pkg/errors"

	"github.com/gatesim/gatesim/sim/trace"
)

// AdvanceWithDelay models unit gate delay: for each of ticks steps it records
// (time, s), propagates once and advances time by one. It performs exactly
// ticks propagation steps whether or not the circuit has settled, so slow
// settling and oscillation are visible in the trace. It returns the snapshot
// after the last step and the next free time.
func AdvanceWithDelay(c *Circuit, s Signals, ticks int, rec trace.Recorder, start int64) (Signals, int64, error) {
	return advanceWithDelay(c, s, ticks, rec, start, nil)
}

func advanceWithDelay(c *Circuit, s Signals, ticks int, rec trace.Recorder, start int64, obs Observer) (Signals, int64, error) {
	t := start
	for i := 0; i < ticks; i++ {
		if err := record(rec, t, s); err != nil {
			return s, t, err
		}
		next, err := c.Propagate(s)
		if err != nil {
			return s, t, err
		}
		if obs != nil {
			obs.ObservePropagation()
		}
		s = next
		t++
	}
	return s, t, nil
}

// SettleWithDelay runs the unit-delay model until the circuit settles,
// recording every intermediate tick. Each iteration records (time, s),
// propagates and advances time; once a step leaves s unchanged the settled
// snapshot is recorded once more at the new time and the run stops. After
// maxIterations steps without settling it stops with Converged false.
func SettleWithDelay(c *Circuit, s Signals, maxIterations int, rec trace.Recorder, start int64) (Signals, int64, Stabilization, error) {
	return settleWithDelay(c, s, maxIterations, rec, start, nil)
}

func settleWithDelay(c *Circuit, s Signals, maxIterations int, rec trace.Recorder, start int64, obs Observer) (Signals, int64, Stabilization, error) {
	var st Stabilization
	t := start
	for st.Steps < maxIterations {
		if err := record(rec, t, s); err != nil {
			return s, t, st, err
		}
		next, err := c.Propagate(s)
		if err != nil {
			return s, t, st, err
		}
		st.Steps++
		if obs != nil {
			obs.ObservePropagation()
		}
		t++
		if next.Equal(s) {
			st.Converged = true
			if err := record(rec, t, s); err != nil {
				return s, t, st, err
			}
			break
		}
		s = next
	}
	if obs != nil {
		obs.ObserveStabilization(st)
	}
	return s, t, st, nil
}

func record(rec trace.Recorder, t int64, s Signals) error {
	if rec == nil {
		return nil
	}
	return errors.Wrapf(rec.Record(t, s.Values()), "recording t=%d", t)
}
