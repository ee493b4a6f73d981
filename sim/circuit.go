package sim

import (
	"github.com/pkg/errors"
)

// wiredGate is a Gate resolved to net indices.
type wiredGate struct {
	op       Op
	out      int
	in1, in2 int
}

// Circuit is a gate list bound to its net table. It is read-only once built
// and may be shared between simulations running on different goroutines.
type Circuit struct {
	gates []Gate
	nets  *netTable
	wired []wiredGate
}

// NewCircuit binds gates, in declaration order, to the set of nets they
// reference. Every gate must carry a valid operation and as many inputs as
// the operation reads.
func NewCircuit(gates []Gate) (*Circuit, error) {
	var names []string
	for i, g := range gates {
		if !g.Op.Valid() {
			return nil, errors.Wrapf(ErrUnknownGateOperation, "gate %d (%s)", i, g.Out)
		}
		if g.Out == "" || g.In1 == "" || (g.Op.Arity() == 2 && g.In2 == "") {
			return nil, errors.Wrapf(ErrMalformedGateLine, "gate %d: %s", i, g)
		}
		names = append(names, g.Out)
		names = append(names, g.Inputs()...)
	}

	c := &Circuit{
		gates: append([]Gate(nil), gates...),
		nets:  newNetTable(names),
		wired: make([]wiredGate, len(gates)),
	}
	for i, g := range c.gates {
		w := wiredGate{
			op:  g.Op,
			out: c.nets.index[g.Out],
			in1: c.nets.index[g.In1],
		}
		w.in2 = w.in1
		if g.Op.Arity() == 2 {
			w.in2 = c.nets.index[g.In2]
		}
		c.wired[i] = w
	}
	return c, nil
}

// Gates returns the gates in declaration order.
func (c *Circuit) Gates() []Gate { return append([]Gate(nil), c.gates...) }

// Nets returns the sorted net names.
func (c *Circuit) Nets() []string { return append([]string(nil), c.nets.names...) }

// Size returns the gate count.
func (c *Circuit) Size() int { return len(c.gates) }

// Initial returns the all-zero snapshot over the circuit's nets.
func (c *Circuit) Initial() Signals {
	return Signals{nets: c.nets, values: make([]uint8, len(c.nets.names))}
}

// Propagate performs one synchronous step: every gate output is computed
// strictly from s and written into a new snapshot. Nets no gate drives keep
// their value. When several gates drive the same net, the last declared wins.
func (c *Circuit) Propagate(s Signals) (Signals, error) {
	if !c.nets.sameAs(s.nets) {
		return s, ErrSnapshotMismatch
	}
	next := Signals{nets: c.nets, values: append([]uint8(nil), s.values...)}
	for i, g := range c.wired {
		v, err := g.op.Eval(s.values[g.in1], s.values[g.in2])
		if err != nil {
			return s, errors.Wrapf(err, "gate %d (%s)", i, c.gates[i].Out)
		}
		next.values[g.out] = v
	}
	return next, nil
}
