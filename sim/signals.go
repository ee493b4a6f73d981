package sim

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// netTable is the sorted, immutable set of net names a snapshot is keyed by.
// It is shared by every snapshot derived from the same circuit.
type netTable struct {
	names []string
	index map[string]int
}

func newNetTable(names []string) *netTable {
	index := make(map[string]int, len(names))
	sorted := make([]string, 0, len(names))
	for _, n := range names {
		if _, seen := index[n]; seen {
			continue
		}
		index[n] = -1
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)
	for i, n := range sorted {
		index[n] = i
	}
	return &netTable{names: sorted, index: index}
}

func (t *netTable) sameAs(o *netTable) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || len(t.names) != len(o.names) {
		return false
	}
	for i := range t.names {
		if t.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

// Signals is a snapshot of every net value at one instant. Net names are
// sorted once at creation and the order never changes; it only affects
// reporting. A Signals value is never modified after it is returned to a
// caller: every operation that changes a value returns a new snapshot.
type Signals struct {
	nets   *netTable
	values []uint8
}

// NewSignals returns an all-zero snapshot over the given nets. Duplicate
// names are registered once.
func NewSignals(names ...string) Signals {
	t := newNetTable(names)
	return Signals{nets: t, values: make([]uint8, len(t.names))}
}

// Len returns the number of nets.
func (s Signals) Len() int { return len(s.values) }

// Names returns the net names in report order.
func (s Signals) Names() []string {
	if s.nets == nil {
		return nil
	}
	return append([]string(nil), s.nets.names...)
}

// Values returns the net values in the same order as Names.
func (s Signals) Values() []uint8 {
	return append([]uint8(nil), s.values...)
}

// Get returns the value of net name.
func (s Signals) Get(name string) (uint8, bool) {
	if s.nets == nil {
		return 0, false
	}
	i, ok := s.nets.index[name]
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Equal reports whether both snapshots hold the same nets with the same values.
func (s Signals) Equal(o Signals) bool {
	if len(s.values) != len(o.values) || !s.nets.sameAs(o.nets) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// With returns a copy of s with the given assignments applied in order.
// Assigning a net that does not exist fails with ErrUnknownNet; values must be 0 or 1.
func (s Signals) With(assignments ...Assignment) (Signals, error) {
	next := s.clone()
	for _, a := range assignments {
		i, ok := -1, false
		if s.nets != nil {
			i, ok = s.nets.index[a.Net]
		}
		if !ok {
			return s, errors.Wrapf(ErrUnknownNet, "%q", a.Net)
		}
		if a.Value > 1 {
			return s, errors.Errorf("net %q: value %d is not a bit", a.Net, a.Value)
		}
		next.values[i] = a.Value
	}
	return next, nil
}

// Map returns the snapshot as a name to value map.
func (s Signals) Map() map[string]uint8 {
	m := make(map[string]uint8, len(s.values))
	for i, v := range s.values {
		m[s.nets.names[i]] = v
	}
	return m
}

// String renders the snapshot as {A:1 B:0}.
func (s Signals) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.nets.names[i])
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(int(v)))
	}
	b.WriteByte('}')
	return b.String()
}

func (s Signals) clone() Signals {
	return Signals{nets: s.nets, values: append([]uint8(nil), s.values...)}
}
