package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenOriginals(tokens []Token[string]) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Original()
	}
	return out
}

func TestTokenizeChars(t *testing.T) {
	tokens := TokenizeChars("abc")
	assert.Equal(t, []string{"a", "b", "c"}, tokenOriginals(tokens))
}

func TestTokenizeWords(t *testing.T) {
	tokens := TokenizeWords("hello world  foo")
	assert.Equal(t, []string{"hello", " ", "world", "  ", "foo"}, tokenOriginals(tokens))
}

func TestTokenizeLines(t *testing.T) {
	tokens := TokenizeLines("line1\nline2\r\nline3")
	assert.Equal(t, []string{"line1", "\n", "line2", "\r\n", "line3"}, tokenOriginals(tokens))
}

func TestBuiltinTokenizerSelection(t *testing.T) {
	assert.Len(t, CharTokenizer.Tokenizer()("ab"), 2)
	assert.Len(t, WordTokenizer.Tokenizer()("ab cd"), 3)
	assert.Len(t, LineTokenizer.Tokenizer()("a\nb"), 3)
}
