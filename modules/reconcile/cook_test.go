package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookAssignsCumulativeOrder(t *testing.T) {
	raw := []RawOp[string]{
		rawTrivial(RawEqual, "ab"),
		rawTrivial(RawInsert, "X"),
		rawTrivial(RawDelete, "cd"),
		rawTrivial(RawEqual, "ef"),
	}

	ops := Cook(raw)
	require.Len(t, ops, 4)

	assert.Equal(t, OpEqual, ops[0].Operation.Kind)
	assert.Equal(t, 0, ops[0].Order)
	assert.Equal(t, 2, ops[0].Operation.Length)

	assert.Equal(t, OpInsert, ops[1].Operation.Kind)
	assert.Equal(t, 2, ops[1].Order)

	assert.Equal(t, OpDelete, ops[2].Operation.Kind)
	assert.Equal(t, 2, ops[2].Order)
	assert.Equal(t, 2, ops[2].Operation.Length)

	assert.Equal(t, OpEqual, ops[3].Operation.Kind)
	assert.Equal(t, 4, ops[3].Order)
}

func TestCookSkipsEmptyRuns(t *testing.T) {
	raw := []RawOp[string]{
		{Kind: RawInsert, Tokens: nil},
		rawTrivial(RawEqual, "x"),
	}
	ops := Cook(raw)
	require.Len(t, ops, 1)
	assert.Equal(t, OpEqual, ops[0].Operation.Kind)
}

func TestOrderedOperationSortOrder(t *testing.T) {
	del, _ := NewDelete[string](2, 3)
	ins, _ := NewInsert(2, []Token[string]{NewTrivialToken("x")})
	eq, _ := NewEqual[string](2, 1)

	delOp := OrderedOperation[string]{Order: 2, Operation: del}
	insOp := OrderedOperation[string]{Order: 2, Operation: ins}
	eqOp := OrderedOperation[string]{Order: 2, Operation: eq}

	assert.True(t, delOp.less(insOp))
	assert.True(t, insOp.less(eqOp))
	assert.False(t, eqOp.less(delOp))
}
