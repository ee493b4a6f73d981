package trace

// TraceSummary aggregates statistics over one trace.
type TraceSummary struct {
	Rows        int
	FirstTime   int64
	LastTime    int64
	Transitions map[string]int // net -> number of value changes between consecutive rows
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	s := NewSummarizer(nil)
	if st == nil {
		return s.Summary()
	}
	_ = s.Begin(st.Nets)
	for _, r := range st.Rows {
		_ = s.Record(r.Time, r.Values)
	}
	return s.Summary()
}

// Summarizer is a Recorder that accumulates a TraceSummary while forwarding
// everything to next (which may be nil).
type Summarizer struct {
	next    Recorder
	nets    []string
	prev    []uint8
	summary TraceSummary
}

// NewSummarizer wraps next.
func NewSummarizer(next Recorder) *Summarizer {
	return &Summarizer{
		next:    next,
		summary: TraceSummary{Transitions: make(map[string]int)},
	}
}

// Begin implements Recorder.
func (s *Summarizer) Begin(nets []string) error {
	s.nets = append([]string(nil), nets...)
	if s.next != nil {
		return s.next.Begin(nets)
	}
	return nil
}

// Record implements Recorder.
func (s *Summarizer) Record(time int64, values []uint8) error {
	if s.summary.Rows == 0 {
		s.summary.FirstTime = time
	} else {
		for i, v := range values {
			if i < len(s.prev) && i < len(s.nets) && s.prev[i] != v {
				s.summary.Transitions[s.nets[i]]++
			}
		}
	}
	s.summary.Rows++
	s.summary.LastTime = time
	s.prev = append(s.prev[:0], values...)
	if s.next != nil {
		return s.next.Record(time, values)
	}
	return nil
}

// End implements Recorder.
func (s *Summarizer) End() error {
	if s.next != nil {
		return s.next.End()
	}
	return nil
}

// Summary returns a copy of the statistics gathered so far.
func (s *Summarizer) Summary() *TraceSummary {
	out := s.summary
	out.Transitions = make(map[string]int, len(s.summary.Transitions))
	for k, v := range s.summary.Transitions {
		out.Transitions[k] = v
	}
	return &out
}

// TotalTransitions returns the sum of per-net transitions.
func (ts *TraceSummary) TotalTransitions() int {
	n := 0
	for _, v := range ts.Transitions {
		n += v
	}
	return n
}
