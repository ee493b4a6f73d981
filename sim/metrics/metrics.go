// Package metrics exposes engine and batch activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gatesim/gatesim/sim"
)

const namespace = "gatesim"

// Outcome and status label values.
const (
	OutcomeConverged     = "converged"
	OutcomeBoundExceeded = "bound_exceeded"
	StatusOK             = "ok"
	StatusFailed         = "failed"
)

// Collector implements sim.Observer and counts batch cases. It is safe for
// concurrent use by many simulators.
type Collector struct {
	PropagationSteps   prometheus.Counter
	Stabilizations     *prometheus.CounterVec
	StabilizationSteps prometheus.Histogram
	Cases              *prometheus.CounterVec
}

var _ sim.Observer = (*Collector)(nil)

// NewCollector creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		PropagationSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "propagation_steps_total",
			Help:      "Synchronous propagation steps performed across all models",
		}),
		Stabilizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "stabilizations_total",
			Help:      "Stabilization runs by outcome",
		}, []string{"outcome"}),
		StabilizationSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "stabilization_steps",
			Help:      "Propagation steps needed per stabilization run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}),
		Cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "cases_total",
			Help:      "Simulated test cases by status",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(c.PropagationSteps, c.Stabilizations, c.StabilizationSteps, c.Cases)
	}
	return c
}

// ObservePropagation implements sim.Observer.
func (c *Collector) ObservePropagation() {
	c.PropagationSteps.Inc()
}

// ObserveStabilization implements sim.Observer.
func (c *Collector) ObserveStabilization(st sim.Stabilization) {
	outcome := OutcomeConverged
	if !st.Converged {
		outcome = OutcomeBoundExceeded
	}
	c.Stabilizations.WithLabelValues(outcome).Inc()
	c.StabilizationSteps.Observe(float64(st.Steps))
}

// ObserveCase counts one finished batch case.
func (c *Collector) ObserveCase(err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	c.Cases.WithLabelValues(status).Inc()
}

// WriteTextfile writes every metric gathered by g to path in the Prometheus
// text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
