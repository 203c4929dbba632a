package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intTokens(values ...int) []Token[int] {
	tokens := make([]Token[int], len(values))
	for i, v := range values {
		tokens[i] = NewToken(v, "", true, true)
	}
	return tokens
}

func TestLongestPrefixContainedWithin(t *testing.T) {
	tests := []struct {
		name string
		old  []int
		new  []int
		want int
	}{
		{name: "partial overlap mid-sequence", old: []int{0, 1, 9, 0, 2, 5}, new: []int{9, 0, 2, 5, 1}, want: 4},
		{name: "no overlap", old: []int{1, 2, 3}, new: []int{4, 5, 6}, want: 0},
		{name: "full containment", old: []int{1, 2, 3, 4}, new: []int{2, 3}, want: 2},
		{name: "new longer than old but prefix matches fully", old: []int{1, 2}, new: []int{1, 2, 3, 4}, want: 2},
		{name: "empty new", old: []int{1, 2, 3}, new: []int{}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := longestPrefixContainedWithin(intTokens(tc.old...), intTokens(tc.new...))
			assert.Equal(t, tc.want, got)
		})
	}
}
