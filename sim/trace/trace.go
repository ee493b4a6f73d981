package trace

// TimeColumn is the header of the first column of every trace.
const TimeColumn = "Tempo"

// Recorder receives one simulation trace: the net names once, then one row
// per recorded time point with values in the same order as the names.
type Recorder interface {
	Begin(nets []string) error
	Record(time int64, values []uint8) error
	End() error
}

// Row is one recorded time point.
type Row struct {
	Time   int64
	Values []uint8
}

// SimulationTrace collects a trace in memory.
type SimulationTrace struct {
	Nets  []string
	Rows  []Row
	Ended bool
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace() *SimulationTrace {
	return &SimulationTrace{
		Rows: make([]Row, 0),
	}
}

// Begin stores the net names.
func (st *SimulationTrace) Begin(nets []string) error {
	st.Nets = append([]string(nil), nets...)
	return nil
}

// Record appends a row. values is copied.
func (st *SimulationTrace) Record(time int64, values []uint8) error {
	st.Rows = append(st.Rows, Row{Time: time, Values: append([]uint8(nil), values...)})
	return nil
}

// End marks the trace complete.
func (st *SimulationTrace) End() error {
	st.Ended = true
	return nil
}

// Column returns the values recorded for net, one per row, or nil if the
// trace has no such net.
func (st *SimulationTrace) Column(net string) []uint8 {
	for i, n := range st.Nets {
		if n == net {
			col := make([]uint8, len(st.Rows))
			for r, row := range st.Rows {
				col[r] = row.Values[i]
			}
			return col
		}
	}
	return nil
}

// Times returns the time of each row.
func (st *SimulationTrace) Times() []int64 {
	ts := make([]int64, len(st.Rows))
	for i, r := range st.Rows {
		ts[i] = r.Time
	}
	return ts
}

// Discard is a Recorder that drops everything.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Begin([]string) error        { return nil }
func (discard) Record(int64, []uint8) error { return nil }
func (discard) End() error                  { return nil }
