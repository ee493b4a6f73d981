// Package batch discovers test-case directories and simulates them.
//
// A test case is a directory holding a netlist and a stimulus script. Running
// a case writes the zero-delay and unit-delay traces next to them.
package batch

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gatesim/gatesim/sim"
	"github.com/gatesim/gatesim/sim/trace"
)

// Layout names the files of a test case, relative to its directory.
type Layout struct {
	Netlist        string
	Stimulus       string
	ZeroDelayTrace string
	UnitDelayTrace string
}

// DefaultLayout returns the file names used by the existing test suites.
func DefaultLayout() Layout {
	return Layout{
		Netlist:        "circuito.hdl",
		Stimulus:       "estimulos.txt",
		ZeroDelayTrace: "saida0.csv",
		UnitDelayTrace: "saida1.csv",
	}
}

// Case is one test-case directory.
type Case struct {
	Name string
	Dir  string
}

// NewCase returns the case rooted at dir.
func NewCase(dir string) Case {
	return Case{Name: filepath.Base(dir), Dir: dir}
}

// Path joins name to the case directory. Absolute names are returned as is.
func (c Case) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// Discover lists the sub-directories of root that contain a netlist file,
// sorted by name. Directories without one are skipped.
func Discover(root string, l Layout) ([]Case, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, "listing test cases")
	}
	var cases []Case
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		c := NewCase(filepath.Join(root, e.Name()))
		if _, err := os.Stat(c.Path(l.Netlist)); err != nil {
			logrus.Debugf("skipping %s: no %s", c.Dir, l.Netlist)
			continue
		}
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}

// Report is the outcome of one case.
type Report struct {
	Case      Case
	Result    *sim.Result
	ZeroDelay *trace.TraceSummary
	UnitDelay *trace.TraceSummary
	Err       error
}

// RunCase loads the case files, simulates them and writes both traces.
func RunCase(c Case, l Layout, cfg sim.Config, opts ...sim.Option) Report {
	rep := Report{Case: c}
	rep.Err = runCase(&rep, l, cfg, opts)
	return rep
}

func runCase(rep *Report, l Layout, cfg sim.Config, opts []sim.Option) error {
	c := rep.Case
	nl, err := sim.LoadNetlist(c.Path(l.Netlist))
	if err != nil {
		return err
	}
	circuit, err := nl.Circuit()
	if err != nil {
		return errors.Wrap(err, c.Path(l.Netlist))
	}
	program, err := sim.LoadStimulus(c.Path(l.Stimulus))
	if err != nil {
		return err
	}
	simulator, err := sim.NewSimulator(circuit, cfg, opts...)
	if err != nil {
		return err
	}

	zeroOut, err := trace.CreateCSV(c.Path(l.ZeroDelayTrace))
	if err != nil {
		return err
	}
	delayOut, err := trace.CreateCSV(c.Path(l.UnitDelayTrace))
	if err != nil {
		_ = zeroOut.End()
		return err
	}
	zero := trace.NewSummarizer(zeroOut)
	delay := trace.NewSummarizer(delayOut)

	res, err := simulator.Run(program, zero, delay)
	if err != nil {
		// release the files; the run error is the one worth reporting
		_ = zeroOut.End()
		_ = delayOut.End()
		return err
	}
	rep.Result = res
	rep.ZeroDelay = zero.Summary()
	rep.UnitDelay = delay.Summary()
	return nil
}
