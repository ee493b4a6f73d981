package sim

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignals_SortsAndDeduplicates(t *testing.T) {
	s := NewSignals("C", "A", "B", "A", "C")

	assert.Equal(t, []string{"A", "B", "C"}, s.Names())
	assert.Equal(t, []uint8{0, 0, 0}, s.Values())
	assert.Equal(t, 3, s.Len())
}

func TestSignals_With_ReturnsNewSnapshot(t *testing.T) {
	// GIVEN an all-zero snapshot
	s := NewSignals("A", "B")

	// WHEN assignments are applied
	next, err := s.With(Assignment{Net: "A", Value: 1}, Assignment{Net: "B", Value: 1}, Assignment{Net: "A", Value: 0})
	require.NoError(t, err)

	// THEN they apply in order to the new snapshot only
	assert.Equal(t, map[string]uint8{"A": 0, "B": 1}, next.Map())
	assert.Equal(t, map[string]uint8{"A": 0, "B": 0}, s.Map(), "source snapshot must not change")
}

func TestSignals_With_UnknownNet(t *testing.T) {
	s := NewSignals("A")
	_, err := s.With(Assignment{Net: "Z", Value: 1})
	assert.True(t, errors.Is(err, ErrUnknownNet))

	var zero Signals
	_, err = zero.With(Assignment{Net: "A", Value: 1})
	assert.True(t, errors.Is(err, ErrUnknownNet))
}

func TestSignals_With_RejectsNonBit(t *testing.T) {
	s := NewSignals("A")
	_, err := s.With(Assignment{Net: "A", Value: 2})
	assert.Error(t, err)
}

func TestSignals_Equal(t *testing.T) {
	a := NewSignals("A", "B")
	b := NewSignals("B", "A")
	assert.True(t, a.Equal(b), "same nets, same values, different tables")

	a1, err := a.With(Assignment{Net: "A", Value: 1})
	require.NoError(t, err)
	assert.False(t, a.Equal(a1))

	assert.False(t, a.Equal(NewSignals("A", "C")), "different nets")
	assert.False(t, a.Equal(NewSignals("A")), "different sizes")
}

func TestSignals_Get(t *testing.T) {
	s, err := NewSignals("A", "B").With(Assignment{Net: "B", Value: 1})
	require.NoError(t, err)

	v, ok := s.Get("B")
	assert.True(t, ok)
	assert.Equal(t, uint8(1), v)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestSignals_Values_IsACopy(t *testing.T) {
	s := NewSignals("A")
	vs := s.Values()
	vs[0] = 1
	v, _ := s.Get("A")
	assert.Equal(t, uint8(0), v)
}

func TestSignals_String(t *testing.T) {
	s, err := NewSignals("B", "A").With(Assignment{Net: "A", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, "{A:1 B:0}", s.String())
}
