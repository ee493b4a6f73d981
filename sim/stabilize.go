package sim

// Stabilization reports how a stabilization run ended.
type Stabilization struct {
	Converged bool // a fixed point was reached
	Steps     int  // propagation steps performed, including the one that confirmed the fixed point
}

// Stabilize propagates s until a step leaves it unchanged or maxIterations
// steps have been made. On convergence it returns the fixed point. Otherwise
// it returns the latest snapshot as a best-effort value with Converged false;
// that outcome is not an error.
func Stabilize(c *Circuit, s Signals, maxIterations int) (Signals, Stabilization, error) {
	return stabilize(c, s, maxIterations, nil)
}

func stabilize(c *Circuit, s Signals, maxIterations int, obs Observer) (Signals, Stabilization, error) {
	var st Stabilization
	for st.Steps < maxIterations {
		next, err := c.Propagate(s)
		if err != nil {
			return s, st, err
		}
		st.Steps++
		if obs != nil {
			obs.ObservePropagation()
		}
		if next.Equal(s) {
			st.Converged = true
			break
		}
		s = next
	}
	if obs != nil {
		obs.ObserveStabilization(st)
	}
	return s, st, nil
}
