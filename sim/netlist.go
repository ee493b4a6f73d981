package sim

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Netlist is a parsed gate list in declaration order.
type Netlist struct {
	Gates []Gate
}

// LoadNetlist reads and parses the netlist file at path.
func LoadNetlist(path string) (*Netlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening netlist")
	}
	defer func() { _ = f.Close() }()
	nl, err := ParseNetlist(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return nl, nil
}

// ParseNetlist parses one gate per line:
//
//	OUT OP IN1 [IN2]
//	OUT = OP IN1 [IN2]
//
// Blank lines and lines starting with '#' are skipped. Tokens past the
// inputs the operation reads are ignored.
func ParseNetlist(r io.Reader) (*Netlist, error) {
	nl := &Netlist{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		g, err := parseGateLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		nl.Gates = append(nl.Gates, g)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading netlist")
	}
	return nl, nil
}

func parseGateLine(line string) (Gate, error) {
	tokens := strings.Fields(line)
	if len(tokens) > 1 && tokens[1] == "=" {
		tokens = append(tokens[:1], tokens[2:]...)
	}
	if len(tokens) < 3 {
		return Gate{}, errors.Wrapf(ErrMalformedGateLine, "%q: want OUT OP IN1 [IN2]", line)
	}
	op, err := ParseOp(tokens[1])
	if err != nil {
		return Gate{}, err
	}
	g := Gate{Out: tokens[0], Op: op, In1: tokens[2]}
	if op.Arity() == 2 {
		if len(tokens) < 4 {
			return Gate{}, errors.Wrapf(ErrMalformedGateLine, "%q: %s needs two inputs", line, op)
		}
		g.In2 = tokens[3]
	}
	return g, nil
}

// Nets returns every net the gates reference, each once, sorted.
func (nl *Netlist) Nets() []string {
	var names []string
	for _, g := range nl.Gates {
		names = append(names, g.Out)
		names = append(names, g.Inputs()...)
	}
	return newNetTable(names).names
}

// Circuit binds the gate list to its nets.
func (nl *Netlist) Circuit() (*Circuit, error) {
	return NewCircuit(nl.Gates)
}
