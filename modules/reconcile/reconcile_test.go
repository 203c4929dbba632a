package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func merged(t *testing.T, ancestor, left, right string) string {
	t.Helper()
	result := ReconcileStrings(ancestor, left, right)
	return result.Apply().Text
}

func TestReconcileScenarios(t *testing.T) {
	tests := []struct {
		name     string
		ancestor string
		left     string
		right    string
		want     string
	}{
		{
			name:     "only left changes",
			ancestor: "the quick brown fox",
			left:     "the quick red fox",
			right:    "the quick brown fox",
			want:     "the quick red fox",
		},
		{
			name:     "only right changes",
			ancestor: "the quick brown fox",
			left:     "the quick brown fox",
			right:    "the slow brown fox",
			want:     "the slow brown fox",
		},
		{
			name:     "both append disjoint text",
			ancestor: "hello world",
			left:     "hello there world",
			right:    "hello world indeed",
			want:     "hello there world indeed",
		},
		{
			name:     "same edit made independently",
			ancestor: "line one\nline two\n",
			left:     "line one\nline TWO\n",
			right:    "line one\nline TWO\n",
			want:     "line one\nline TWO\n",
		},
		{
			name:     "left deletes what right edits around",
			ancestor: "keep this and that part",
			left:     "keep this part",
			right:    "keep this and that important part",
			want:     "keep this important part",
		},
		{
			name:     "both delete the same region",
			ancestor: "alpha beta gamma delta",
			left:     "alpha gamma delta",
			right:    "alpha gamma delta",
			want:     "alpha gamma delta",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := merged(t, tc.ancestor, tc.left, tc.right)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReconcileIdenticalSidesIsNoop(t *testing.T) {
	ancestor := "some unchanged text"
	got := merged(t, ancestor, ancestor, ancestor)
	assert.Equal(t, ancestor, got)
}

func TestReconcileCursorRelocation(t *testing.T) {
	ancestor := "this is some complex text to test cursor positions"

	left := NewTextWithCursors("this was some really complex text to test cursor positions", []CursorPosition{
		{ID: 0, CharIndex: 9},
		{ID: 1, CharIndex: 35},
	})
	right := NewTextWithCursors("that is some complex sample for testing cursor movements", []CursorPosition{
		{ID: 2, CharIndex: 5},
		{ID: 3, CharIndex: 36},
	})

	result := Reconcile(ancestor, left, right, WordTokenizer.Tokenizer())
	applied := result.Apply()

	require.NotEmpty(t, applied.Text)
	byID := map[int]int{}
	for _, c := range applied.Cursors {
		byID[c.ID] = c.CharIndex
	}
	require.Len(t, byID, 4)
	for _, id := range []int{0, 1, 2, 3} {
		_, ok := byID[id]
		assert.Truef(t, ok, "cursor %d missing from merged result", id)
	}
}

// TestReconcileLiteralScenarios pins the exact ancestor/left/right/expected
// rows this engine is required to merge, independent of any internal
// representation detail.
func TestReconcileLiteralScenarios(t *testing.T) {
	tests := []struct {
		name     string
		ancestor string
		left     string
		right    string
		want     string
	}{
		{
			name:     "disjoint single-word edits",
			ancestor: "original_1 original_2 original_3",
			left:     "original_1 edit_1 original_3",
			right:    "original_1 original_2 edit_2",
			want:     "original_1 edit_1 edit_2",
		},
		{
			name:     "left deletes the middle, right edits within it",
			ancestor: "original_1 original_2 original_3 original_4 original_5",
			left:     "original_1 original_5",
			right:    "original_1 edit_1 original_3 edit_2 original_5",
			want:     "original_1 edit_1 edit_2 original_5",
		},
		{
			name:     "overlapping word-level edits on both sides",
			ancestor: "hello world",
			left:     "hi, world",
			right:    "hello my friend!",
			want:     "hi, my friend!",
		},
		{
			name:     "both sides delete the same word identically",
			ancestor: "both delete the same word",
			left:     "both the same word",
			right:    "both the same word",
			want:     "both the same word",
		},
		{
			name:     "right's insert contains left's insert as a prefix",
			ancestor: "hi ",
			left:     "hi there ",
			right:    "hi there my friend ",
			want:     "hi there my friend ",
		},
		{
			name:     "both sides delete around a middle edit",
			ancestor: "a 0 1 2 b",
			left:     "a b",
			right:    "a E 1 F b",
			want:     "a E F b",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := merged(t, tc.ancestor, tc.left, tc.right)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestReconcileLiteralCursorScenario pins the exact merged text and
// final cursor positions for a scenario mixing word replacement, an
// insertion, and a rename on both sides at once.
func TestReconcileLiteralCursorScenario(t *testing.T) {
	ancestor := "this is some complex text to test cursor positions"

	left := NewTextWithCursors("this is some really complex text for testing cursor positions", []CursorPosition{
		{ID: 0, CharIndex: 8},
		{ID: 1, CharIndex: 22},
	})
	right := NewTextWithCursors("that was some complex sample to test cursor movements", []CursorPosition{
		{ID: 2, CharIndex: 5},
		{ID: 3, CharIndex: 29},
	})

	result := Reconcile(ancestor, left, right, WordTokenizer.Tokenizer())
	applied := result.Apply()

	assert.Equal(t, "that was really complex sample for testing cursor movements", applied.Text)

	byID := map[int]int{}
	for _, c := range applied.Cursors {
		byID[c.ID] = c.CharIndex
	}
	require.Len(t, byID, 4)
	assert.Equal(t, 5, byID[2])
	assert.Equal(t, 9, byID[0])
	assert.Equal(t, 23, byID[1])
	assert.Equal(t, 30, byID[3])
}

func TestReconcileDiffRoundTrip(t *testing.T) {
	ancestor := "the quick brown fox jumps"
	updated := "the quick red fox jumps over"

	edited := FromStringsWithTokenizer(ancestor, PlainText(updated), WordTokenizer.Tokenizer())
	entries := edited.ToDiff()

	roundTripped, err := FromDiff(ancestor, entries, WordTokenizer.Tokenizer())
	require.NoError(t, err)
	assert.Equal(t, updated, roundTripped.Apply().Text)
}

func TestFromDiffRejectsOverrun(t *testing.T) {
	_, err := FromDiff[string]("short", []DiffEntry{retainEntry(1000)}, WordTokenizer.Tokenizer())
	require.Error(t, err)
	var lengthErr *LengthExceedsOriginal
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, 0, lengthErr.Position)
	assert.Equal(t, 1000, lengthErr.Requested)
	assert.Equal(t, 5, lengthErr.Available)
}

func TestCompressedDiffRoundTrip(t *testing.T) {
	ancestor := "one two three four five"
	updated := "one two THREE four five six"

	edited := FromStringsWithTokenizer(ancestor, PlainText(updated), WordTokenizer.Tokenizer())
	compressed, err := edited.ToCompressedDiff()
	require.NoError(t, err)

	restored, err := FromCompressedDiff[string](ancestor, compressed, WordTokenizer.Tokenizer())
	require.NoError(t, err)
	assert.Equal(t, updated, restored.Apply().Text)
}

func TestApplyWithHistoryTagsProvenance(t *testing.T) {
	ancestor := "alpha beta gamma"
	left := "alpha BETA gamma"
	right := "alpha beta gamma delta"

	result := ReconcileStrings(ancestor, left, right)
	spans := result.ApplyWithHistory()

	require.NotEmpty(t, spans)
	var rebuilt string
	var sawAdded bool
	for _, s := range spans {
		rebuilt += s.Text
		if s.Provenance == AddedFromLeft || s.Provenance == AddedFromRight {
			sawAdded = true
		}
	}
	assert.Equal(t, result.Apply().Text, rebuilt)
	assert.True(t, sawAdded)
}

func TestIsBinary(t *testing.T) {
	assert.False(t, IsBinary([]byte("hello world")))
	assert.True(t, IsBinary([]byte{'h', 'i', 0, 'x'}))
	assert.True(t, IsBinary([]byte{0xff, 0xfe, 0xfd}))
}
