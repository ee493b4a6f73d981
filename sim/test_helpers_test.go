package sim

import (
	"io"
	"strconv"
	"strings"

	"github.com/gatesim/gatesim/sim/trace"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

// runTraces runs program on c and returns both traces kept in memory.
func runTraces(c *Circuit, cfg Config, program []Instruction) (*Result, *trace.SimulationTrace, *trace.SimulationTrace, error) {
	zero, delay := trace.NewSimulationTrace(), trace.NewSimulationTrace()
	sim, err := NewSimulator(c, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := sim.Run(program, zero, delay)
	return res, zero, delay, err
}

// rowsOf flattens a trace into one "t:values" string per row, e.g. "3:0110".
func rowsOf(st *trace.SimulationTrace) []string {
	out := make([]string, len(st.Rows))
	for i, r := range st.Rows {
		var b strings.Builder
		b.WriteString(strconv.FormatInt(r.Time, 10))
		b.WriteByte(':')
		for _, v := range r.Values {
			b.WriteByte('0' + v)
		}
		out[i] = b.String()
	}
	return out
}
