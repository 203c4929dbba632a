package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawTrivial(kind RawOpKind, s string) RawOp[string] {
	return RawOp[string]{Kind: kind, Tokens: []Token[string]{NewTrivialToken(s)}}
}

func TestElongateMergesAdjacentJoinableInserts(t *testing.T) {
	raw := []RawOp[string]{
		rawTrivial(RawInsert, "a"),
		rawTrivial(RawInsert, "b"),
	}
	result := Elongate(raw)
	require.Len(t, result, 1)
	assert.Equal(t, "ab", result[0].OriginalText())
}

func TestElongateDoesNotMergeAcrossEqual(t *testing.T) {
	raw := []RawOp[string]{
		rawTrivial(RawInsert, "a"),
		rawTrivial(RawEqual, "x"),
		rawTrivial(RawInsert, "b"),
	}
	result := Elongate(raw)
	require.Len(t, result, 3)
	assert.Equal(t, RawInsert, result[0].Kind)
	assert.Equal(t, RawEqual, result[1].Kind)
	assert.Equal(t, RawInsert, result[2].Kind)
}

func TestElongateReordersInterleavedInsertDelete(t *testing.T) {
	raw := []RawOp[string]{
		rawTrivial(RawInsert, "a"),
		rawTrivial(RawDelete, "x"),
		rawTrivial(RawInsert, "b"),
		rawTrivial(RawDelete, "y"),
	}
	result := Elongate(raw)
	require.Len(t, result, 2)
	assert.Equal(t, RawDelete, result[0].Kind)
	assert.Equal(t, "xy", result[0].OriginalText())
	assert.Equal(t, RawInsert, result[1].Kind)
	assert.Equal(t, "ab", result[1].OriginalText())
}

func TestElongateDoesNotMergeWhenNotJoinable(t *testing.T) {
	unjoinable := NewToken("x", "x", false, false)
	raw := []RawOp[string]{
		{Kind: RawInsert, Tokens: []Token[string]{unjoinable}},
		rawTrivial(RawInsert, "y"),
	}
	result := Elongate(raw)
	require.Len(t, result, 2)
}
