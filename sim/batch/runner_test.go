package batch

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatesim/gatesim/sim"
	"github.com/gatesim/gatesim/sim/metrics"
)

func TestRunner_Run_ReportsInInputOrder(t *testing.T) {
	// GIVEN several good cases and one broken case
	root := t.TempDir()
	names := []string{"c0", "c1", "c2", "c3", "c4"}
	for i, n := range names {
		netlist := "C AND A B\n"
		if i == 2 {
			netlist = "C BOGUS A B\n"
		}
		writeCase(t, root, n, netlist, "AB = 11\n+2\n")
	}
	cases, err := Discover(root, DefaultLayout())
	require.NoError(t, err)

	// WHEN run on a pool of workers
	r := NewRunner()
	r.Workers = 3
	reports := r.Run(context.Background(), cases)

	// THEN every case has a report in its slot
	require.Len(t, reports, len(names))
	for i, rep := range reports {
		assert.Equal(t, names[i], rep.Case.Name)
		if i == 2 {
			assert.Error(t, rep.Err)
			continue
		}
		require.NoError(t, rep.Err)
		assert.Equal(t, 4, rep.ZeroDelay.Rows)
	}
	failed := Failed(reports)
	require.Len(t, failed, 1)
	assert.Equal(t, "c2", failed[0].Case.Name)
}

func TestRunner_Run_SharedObserver(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"a", "b", "c"} {
		writeCase(t, root, n, "C AND A B\n", "AB = 11\n+2\n")
	}
	writeCase(t, root, "broken", "C AND A B\n", "nonsense\n")
	cases, err := Discover(root, DefaultLayout())
	require.NoError(t, err)

	collector := metrics.NewCollector(nil)
	r := &Runner{
		Layout:   DefaultLayout(),
		Config:   sim.DefaultConfig(),
		Workers:  4,
		Observer: collector,
	}
	reports := r.Run(context.Background(), cases)

	steps := 0
	for _, rep := range reports {
		if rep.Err == nil {
			steps += rep.Result.Steps
		}
	}
	assert.Equal(t, float64(steps), testutil.ToFloat64(collector.PropagationSteps))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.Cases.WithLabelValues(metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Cases.WithLabelValues(metrics.StatusFailed)))
}

func TestRunner_Run_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "a", "C AND A B\n", "+1\n")
	writeCase(t, root, "b", "C AND A B\n", "+1\n")
	cases, err := Discover(root, DefaultLayout())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reports := NewRunner().Run(ctx, cases)

	require.Len(t, reports, 2)
	for _, rep := range reports {
		assert.ErrorIs(t, rep.Err, context.Canceled)
		assert.Nil(t, rep.Result)
	}
}

func TestRunner_Run_NoCases(t *testing.T) {
	assert.Empty(t, NewRunner().Run(context.Background(), nil))
}
