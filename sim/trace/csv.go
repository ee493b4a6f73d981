package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVRecorder writes a trace as CSV: a header row "Tempo,<net>,..." then
// "<time>,<value>,..." per recorded point.
type CSVRecorder struct {
	w      *csv.Writer
	closer io.Closer
	row    []string
}

// NewCSVRecorder writes to w. The caller keeps ownership of w.
func NewCSVRecorder(w io.Writer) *CSVRecorder {
	return &CSVRecorder{w: csv.NewWriter(w)}
}

// CreateCSV creates (or truncates) the file at path and returns a recorder
// that closes it on End.
func CreateCSV(path string) (*CSVRecorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	r := NewCSVRecorder(f)
	r.closer = f
	return r, nil
}

// Begin writes the header row.
func (r *CSVRecorder) Begin(nets []string) error {
	header := make([]string, 0, len(nets)+1)
	header = append(header, TimeColumn)
	header = append(header, nets...)
	if err := r.w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	r.row = make([]string, len(header))
	return nil
}

// Record writes one row.
func (r *CSVRecorder) Record(time int64, values []uint8) error {
	if len(values)+1 != len(r.row) {
		return fmt.Errorf("row at t=%d has %d values, header has %d nets", time, len(values), len(r.row)-1)
	}
	r.row[0] = strconv.FormatInt(time, 10)
	for i, v := range values {
		r.row[i+1] = strconv.Itoa(int(v))
	}
	if err := r.w.Write(r.row); err != nil {
		return fmt.Errorf("writing CSV row t=%d: %w", time, err)
	}
	return nil
}

// End flushes buffered rows and closes the file if the recorder owns one.
func (r *CSVRecorder) End() error {
	r.w.Flush()
	err := r.w.Error()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
		r.closer = nil
	}
	if err != nil {
		return fmt.Errorf("finishing CSV trace: %w", err)
	}
	return nil
}

// ReadCSV parses a trace written by CSVRecorder.
func ReadCSV(rd io.Reader) (*SimulationTrace, error) {
	reader := csv.NewReader(rd)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) == 0 || header[0] != TimeColumn {
		return nil, fmt.Errorf("CSV header must start with %q", TimeColumn)
	}

	st := NewSimulationTrace()
	_ = st.Begin(header[1:])
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		t, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad time %q", len(st.Rows)+1, row[0])
		}
		values := make([]uint8, len(row)-1)
		for i, cell := range row[1:] {
			v, err := strconv.ParseUint(cell, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("row %d, net %s: bad value %q", len(st.Rows)+1, st.Nets[i], cell)
			}
			values[i] = uint8(v)
		}
		_ = st.Record(t, values)
	}
	_ = st.End()
	return st, nil
}

// LoadCSV reads the trace file at path.
func LoadCSV(path string) (*SimulationTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f)
}
