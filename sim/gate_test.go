package sim

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOp_Eval_TruthTables(t *testing.T) {
	td := []struct {
		op     Op
		result []uint8 // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{OpAnd, []uint8{0, 0, 0, 1}},
		{OpOr, []uint8{0, 1, 1, 1}},
		{OpNand, []uint8{1, 1, 1, 0}},
		{OpNor, []uint8{1, 0, 0, 0}},
		{OpXor, []uint8{0, 1, 1, 0}},
		{OpNot, []uint8{1, 1, 0, 0}}, // b is ignored
	}
	for _, d := range td {
		t.Run(d.op.String(), func(t *testing.T) {
			for i := 0; i < 4; i++ {
				a, b := uint8(i>>1), uint8(i&1)
				got, err := d.op.Eval(a, b)
				require.NoError(t, err)
				assert.Equal(t, d.result[i], got, "%s(%d, %d)", d.op, a, b)
			}
		})
	}
}

func TestOp_Eval_InvalidOp_ReturnsUnknownGateOperation(t *testing.T) {
	_, err := Op(42).Eval(1, 1)
	assert.True(t, errors.Is(err, ErrUnknownGateOperation))

	_, err = opInvalid.Eval(0, 0)
	assert.True(t, errors.Is(err, ErrUnknownGateOperation))
}

func TestParseOp(t *testing.T) {
	for name, want := range opsByName {
		got, err := ParseOp(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	for _, bad := range []string{"XNOR", "and", "", "NOTT"} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, err := ParseOp(bad)
			assert.True(t, errors.Is(err, ErrUnknownGateOperation))
		})
	}
}

func TestOp_Arity(t *testing.T) {
	assert.Equal(t, 1, OpNot.Arity())
	for _, op := range []Op{OpAnd, OpOr, OpNand, OpNor, OpXor} {
		assert.Equal(t, 2, op.Arity(), op.String())
	}
}

func TestGate_String_NetlistSyntax(t *testing.T) {
	assert.Equal(t, "C AND A B", Gate{Out: "C", Op: OpAnd, In1: "A", In2: "B"}.String())
	assert.Equal(t, "X NOT X", Gate{Out: "X", Op: OpNot, In1: "X"}.String())
}
