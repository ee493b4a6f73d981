package sim

// Observer is notified of engine activity. Implementations must be safe for
// concurrent use when shared between simulators.
type Observer interface {
	// ObservePropagation is called once per propagation step.
	ObservePropagation()
	// ObserveStabilization is called once per stabilization run, including
	// the end-of-script unit-delay settling run.
	ObserveStabilization(Stabilization)
}

// stepCounter counts propagation steps for Result and forwards to next.
type stepCounter struct {
	steps int
	next  Observer
}

func (sc *stepCounter) ObservePropagation() {
	sc.steps++
	if sc.next != nil {
		sc.next.ObservePropagation()
	}
}

func (sc *stepCounter) ObserveStabilization(st Stabilization) {
	if sc.next != nil {
		sc.next.ObserveStabilization(st)
	}
}
