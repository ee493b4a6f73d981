package sim

import (
	"fmt"

	"github.com/pkg/errors"
)

// Op is a gate operation. The set is closed: only the constants below are valid.
type Op uint8

const (
	opInvalid Op = iota
	OpAnd
	OpOr
	OpNand
	OpNor
	OpXor
	OpNot
)

var opNames = map[Op]string{
	OpAnd:  "AND",
	OpOr:   "OR",
	OpNand: "NAND",
	OpNor:  "NOR",
	OpXor:  "XOR",
	OpNot:  "NOT",
}

var opsByName = map[string]Op{
	"AND":  OpAnd,
	"OR":   OpOr,
	"NAND": OpNand,
	"NOR":  OpNor,
	"XOR":  OpXor,
	"NOT":  OpNot,
}

// ParseOp maps a netlist operation name to an Op. Names are case-sensitive.
func ParseOp(name string) (Op, error) {
	op, ok := opsByName[name]
	if !ok {
		return opInvalid, errors.Wrapf(ErrUnknownGateOperation, "%q", name)
	}
	return op, nil
}

// String returns the netlist name of the operation.
func (op Op) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Valid reports whether op is one of the six known operations.
func (op Op) Valid() bool {
	_, ok := opNames[op]
	return ok
}

// Arity returns the number of inputs the operation reads: 1 for NOT, 2 otherwise.
func (op Op) Arity() int {
	if op == OpNot {
		return 1
	}
	return 2
}

// Eval computes the output bit for inputs a and b. b is ignored by NOT.
// Inputs must be 0 or 1.
func (op Op) Eval(a, b uint8) (uint8, error) {
	switch op {
	case OpAnd:
		return a & b, nil
	case OpOr:
		return a | b, nil
	case OpNand:
		return 1 - (a & b), nil
	case OpNor:
		return 1 - (a | b), nil
	case OpXor:
		return a ^ b, nil
	case OpNot:
		return 1 - a, nil
	}
	return 0, errors.Wrapf(ErrUnknownGateOperation, "%v", op)
}

// Gate is one netlist element: Out = Op(In1, In2). In2 is empty for NOT.
type Gate struct {
	Out string
	Op  Op
	In1 string
	In2 string
}

// String renders the gate in netlist syntax.
func (g Gate) String() string {
	if g.Op.Arity() == 1 {
		return g.Out + " " + g.Op.String() + " " + g.In1
	}
	return g.Out + " " + g.Op.String() + " " + g.In1 + " " + g.In2
}

// Inputs returns the nets the gate reads, in order.
func (g Gate) Inputs() []string {
	if g.Op.Arity() == 1 {
		return []string{g.In1}
	}
	return []string{g.In1, g.In2}
}
