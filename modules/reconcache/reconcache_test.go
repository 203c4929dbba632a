package reconcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReturnsEquivalentResult(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	defer c.Close()

	ancestor := "the quick brown fox"
	left := "the quick red fox"
	right := "the quick brown fox jumps"

	first := c.ReconcileStrings(ancestor, left, right)
	second := c.ReconcileStrings(ancestor, left, right)

	assert.Equal(t, first.Apply().Text, second.Apply().Text)
}

func TestKeyDistinguishesInputs(t *testing.T) {
	a := Key("p", "l", "r")
	b := Key("p", "l2", "r")
	assert.NotEqual(t, a, b)
}
