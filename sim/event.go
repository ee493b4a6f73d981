package sim

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Instruction is one step of a stimulus script. Execute applies it to both
// models of the simulator.
type Instruction interface {
	Execute(*Simulator) error
}

// Assignment sets one net to a bit value.
type Assignment struct {
	Net   string
	Value uint8
}

// Assign sets primary inputs in both models immediately: no propagation
// happens and time does not move.
type Assign struct {
	Assignments []Assignment
}

// Execute applies the assignments in order.
func (a Assign) Execute(sim *Simulator) error {
	logrus.Debugf("<< Assign %s at t=%d", a, sim.zeroClock)
	return sim.assign(a.Assignments)
}

// String renders the assignment in stimulus syntax, e.g. "AB = 10".
func (a Assign) String() string {
	var names, values strings.Builder
	for _, as := range a.Assignments {
		names.WriteString(as.Net)
		values.WriteString(strconv.Itoa(int(as.Value)))
	}
	return names.String() + " = " + values.String()
}

// Advance moves simulated time forward by Ticks.
type Advance struct {
	Ticks int
}

// Execute settles the zero-delay model and records it for every tick, and
// steps the unit-delay model once per tick.
func (a Advance) Execute(sim *Simulator) error {
	logrus.Debugf("<< Advance +%d at t=%d", a.Ticks, sim.zeroClock)
	return sim.advance(a.Ticks)
}

// String renders the advance in stimulus syntax, e.g. "+5".
func (a Advance) String() string {
	return "+" + strconv.Itoa(a.Ticks)
}
