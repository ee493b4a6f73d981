package batch

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gatesim/gatesim/sim"
)

// CaseObserver is told about every finished case. A Runner's Observer that
// also implements CaseObserver receives these calls.
type CaseObserver interface {
	ObserveCase(err error)
}

// Runner simulates independent test cases on a pool of goroutines.
type Runner struct {
	Layout   Layout
	Config   sim.Config
	Workers  int          // <= 0 means GOMAXPROCS
	Observer sim.Observer // optional, shared by every case
}

// NewRunner returns a runner with the default layout and configuration.
func NewRunner() *Runner {
	return &Runner{
		Layout: DefaultLayout(),
		Config: sim.DefaultConfig(),
	}
}

// Run simulates cases and returns one report per case, in input order.
// Cases share nothing but the observer. Once ctx is done, cases not yet
// started are reported with the context error.
func (r *Runner) Run(ctx context.Context, cases []Case) []Report {
	reports := make([]Report, len(cases))
	if len(cases) == 0 {
		return reports
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(cases) {
		workers = len(cases)
	}

	var opts []sim.Option
	if r.Observer != nil {
		opts = append(opts, sim.WithObserver(r.Observer))
	}

	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				reports[i] = r.runOne(ctx, cases[i], opts)
			}
		}()
	}
	for i := range cases {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return reports
}

func (r *Runner) runOne(ctx context.Context, c Case, opts []sim.Option) Report {
	var rep Report
	if err := ctx.Err(); err != nil {
		rep = Report{Case: c, Err: errors.Wrap(err, "not started")}
	} else {
		logrus.Infof("Simulating %s", c.Dir)
		rep = RunCase(c, r.Layout, r.Config, opts...)
	}

	if co, ok := r.Observer.(CaseObserver); ok {
		co.ObserveCase(rep.Err)
	}
	if rep.Err != nil {
		logrus.Errorf("%s: %v", c.Name, rep.Err)
		return rep
	}
	logrus.Infof("%s: %d steps, %d zero-delay rows, %d unit-delay rows, %d warning(s)",
		c.Name, rep.Result.Steps, rep.ZeroDelay.Rows, rep.UnitDelay.Rows, len(rep.Result.Warnings))
	return rep
}

// Failed returns the reports that ended with an error.
func Failed(reports []Report) []Report {
	var failed []Report
	for _, rep := range reports {
		if rep.Err != nil {
			failed = append(failed, rep)
		}
	}
	return failed
}
