package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords_SimpleReplacement(t *testing.T) {
	tokens := Words("the cat sat", "the dog sat")

	require.Len(t, tokens, 6)
	assert.Equal(t, Token{Type: TokenSame, Text: "the"}, tokens[0])
	assert.Equal(t, Token{Type: TokenSame, Text: " "}, tokens[1])
	assert.Equal(t, Token{Type: TokenDel, Text: "cat"}, tokens[2])
	assert.Equal(t, Token{Type: TokenAdd, Text: "dog"}, tokens[3])
	assert.Equal(t, Token{Type: TokenSame, Text: " "}, tokens[4])
	assert.Equal(t, Token{Type: TokenSame, Text: "sat"}, tokens[5])
}

func TestWords_DeletedBeforeAddedOnTies(t *testing.T) {
	tokens := Words("alpha", "beta")

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenDel, tokens[0].Type)
	assert.Equal(t, TokenAdd, tokens[1].Type)
}

// Concatenating the del+same tokens reproduces the old string and the
// add+same tokens the new one, whitespace included.
func TestWords_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
	}{
		{
			name: "replacement",
			old:  "the cat sat",
			new:  "the dog sat",
		},
		{
			name: "irregular whitespace survives",
			old:  "a  b\tc",
			new:  "a  d\tc",
		},
		{
			name: "pure insertion",
			old:  "start end",
			new:  "start middle end",
		},
		{
			name: "pure deletion",
			old:  "one two three",
			new:  "one three",
		},
		{
			name: "everything changes",
			old:  "old text here",
			new:  "completely new words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Words(tt.old, tt.new)

			var oldSide, newSide strings.Builder
			for _, tok := range tokens {
				switch tok.Type {
				case TokenSame:
					oldSide.WriteString(tok.Text)
					newSide.WriteString(tok.Text)
				case TokenDel:
					oldSide.WriteString(tok.Text)
				case TokenAdd:
					newSide.WriteString(tok.Text)
				}
			}

			assert.Equal(t, tt.old, oldSide.String())
			assert.Equal(t, tt.new, newSide.String())
		})
	}
}

func TestWords_EmptyInputs(t *testing.T) {
	assert.Empty(t, Words("", ""))

	added := Words("", "hello world")
	for _, tok := range added {
		assert.Equal(t, TokenAdd, tok.Type)
	}

	deleted := Words("hello world", "")
	for _, tok := range deleted {
		assert.Equal(t, TokenDel, tok.Type)
	}
}

func TestWords_IdenticalInputs(t *testing.T) {
	for _, tok := range Words("same text", "same text") {
		assert.Equal(t, TokenSame, tok.Type)
	}
}

func TestSplitWords(t *testing.T) {
	assert.Nil(t, splitWords(""))
	assert.Equal(t, []string{"one"}, splitWords("one"))
	assert.Equal(t, []string{"a", " ", "b"}, splitWords("a b"))
	assert.Equal(t, []string{"  ", "lead", "\t\t", "trail", " "}, splitWords("  lead\t\ttrail "))
}

func TestSplitWords_MultiByteLeadingSpace(t *testing.T) {
	// U+00A0 is whitespace but multi-byte; the first rune, not the first
	// byte, decides whether the string opens in a space run.
	assert.Equal(t, []string{" ", "word"}, splitWords(" word"))
	assert.Equal(t, []string{" ", "a", " ", "b"}, splitWords(" a b"))

	for _, tok := range Words(" cat", " dog") {
		assert.NotEmpty(t, tok.Text)
	}
}
