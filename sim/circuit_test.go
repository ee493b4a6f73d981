package sim

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCircuit parses netlist text into a circuit or fails the test.
func mustCircuit(t *testing.T, text string) *Circuit {
	t.Helper()
	nl, err := ParseNetlist(stringsReader(text))
	require.NoError(t, err)
	c, err := nl.Circuit()
	require.NoError(t, err)
	return c
}

// mustSignals applies name/value pairs to c's initial snapshot.
func mustSignals(t *testing.T, c *Circuit, values map[string]uint8) Signals {
	t.Helper()
	var as []Assignment
	for n, v := range values {
		as = append(as, Assignment{Net: n, Value: v})
	}
	s, err := c.Initial().With(as...)
	require.NoError(t, err)
	return s
}

func TestNewCircuit_CollectsSortedNets(t *testing.T) {
	c := mustCircuit(t, "Z OR Y X\nY NOT A\n")

	assert.Equal(t, []string{"A", "X", "Y", "Z"}, c.Nets())
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, map[string]uint8{"A": 0, "X": 0, "Y": 0, "Z": 0}, c.Initial().Map())
}

func TestNewCircuit_RejectsInvalidGates(t *testing.T) {
	_, err := NewCircuit([]Gate{{Out: "C", Op: Op(99), In1: "A", In2: "B"}})
	assert.True(t, errors.Is(err, ErrUnknownGateOperation))

	_, err = NewCircuit([]Gate{{Out: "C", Op: OpAnd, In1: "A"}})
	assert.True(t, errors.Is(err, ErrMalformedGateLine))
}

func TestNewCircuit_Empty(t *testing.T) {
	c, err := NewCircuit(nil)
	require.NoError(t, err)

	next, err := c.Propagate(c.Initial())
	require.NoError(t, err)
	assert.Equal(t, 0, next.Len())
}

func TestPropagate_ReadsOnlyThePriorSnapshot(t *testing.T) {
	// GIVEN a two-stage chain where B feeds C
	c := mustCircuit(t, "B NOT A\nC NOT B\n")
	s := c.Initial() // A=0 B=0 C=0

	// WHEN one step is taken
	next, err := c.Propagate(s)
	require.NoError(t, err)

	// THEN C is computed from the old B (0), not the new B (1)
	assert.Equal(t, map[string]uint8{"A": 0, "B": 1, "C": 1}, next.Map())

	// AND the second step sees the new B
	next, err = c.Propagate(next)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint8{"A": 0, "B": 1, "C": 0}, next.Map())
}

func TestPropagate_DeclarationOrderDoesNotMatter(t *testing.T) {
	forward := mustCircuit(t, "B NOT A\nC NOT B\n")
	backward := mustCircuit(t, "C NOT B\nB NOT A\n")

	s1, s2 := forward.Initial(), backward.Initial()
	for i := 0; i < 3; i++ {
		var err error
		s1, err = forward.Propagate(s1)
		require.NoError(t, err)
		s2, err = backward.Propagate(s2)
		require.NoError(t, err)
		assert.Equal(t, s1.Map(), s2.Map(), "step %d", i+1)
	}
}

func TestPropagate_FixedPointIsIdempotent(t *testing.T) {
	c := mustCircuit(t, "C AND A B\n")
	s := mustSignals(t, c, map[string]uint8{"A": 1, "B": 1, "C": 1})

	next, err := c.Propagate(s)
	require.NoError(t, err)
	assert.True(t, next.Equal(s))
}

func TestPropagate_DoesNotModifyInput(t *testing.T) {
	c := mustCircuit(t, "C AND A B\n")
	s := mustSignals(t, c, map[string]uint8{"A": 1, "B": 1})

	_, err := c.Propagate(s)
	require.NoError(t, err)
	v, _ := s.Get("C")
	assert.Equal(t, uint8(0), v)
}

func TestPropagate_LastDriverWins(t *testing.T) {
	c := mustCircuit(t, "X OR A B\nX AND A B\n")
	s := mustSignals(t, c, map[string]uint8{"A": 1})

	next, err := c.Propagate(s)
	require.NoError(t, err)
	v, _ := next.Get("X")
	assert.Equal(t, uint8(0), v, "AND(1,0) is declared last")
}

func TestPropagate_UnknownOperation(t *testing.T) {
	// GIVEN a circuit whose wiring was corrupted after validation
	c := mustCircuit(t, "C AND A B\n")
	c.wired[0].op = opInvalid

	// WHEN propagating
	_, err := c.Propagate(c.Initial())

	// THEN the evaluation error surfaces
	assert.True(t, errors.Is(err, ErrUnknownGateOperation))
}

func TestPropagate_ForeignSnapshot(t *testing.T) {
	c := mustCircuit(t, "C AND A B\n")
	_, err := c.Propagate(NewSignals("X", "Y"))
	assert.True(t, errors.Is(err, ErrSnapshotMismatch))
}
