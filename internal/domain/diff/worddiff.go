// Package diff computes field-level and word-level differences between an
// original record and a proposed edit, for moderation display. All functions
// are pure and deterministic.
package diff

import (
	"unicode"
	"unicode/utf8"
)

// TokenType classifies a word-diff token.
type TokenType string

const (
	TokenSame TokenType = "same"
	TokenAdd  TokenType = "add"
	TokenDel  TokenType = "del"
)

// Token is one unit of a word-level diff. Whitespace runs are tokens of
// their own, so concatenating token text reproduces the inputs verbatim.
type Token struct {
	Type TokenType `json:"type"`
	Text string    `json:"text"`
}

// Words computes a word-level diff between two strings using a longest
// common subsequence over whitespace-preserving tokens. When extending by a
// deletion and by an insertion score equally, the add branch wins the
// backtrack, which puts deleted runs before their replacements in the
// output. The ordering is cosmetic but fixed.
func Words(oldStr, newStr string) []Token {
	a := splitWords(oldStr)
	b := splitWords(newStr)

	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack from the full strings, preferring the add branch on ties.
	tokens := make([]Token, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && a[i-1] == b[j-1]:
			tokens = append(tokens, Token{Type: TokenSame, Text: a[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			tokens = append(tokens, Token{Type: TokenAdd, Text: b[j-1]})
			j--
		default:
			tokens = append(tokens, Token{Type: TokenDel, Text: a[i-1]})
			i--
		}
	}

	for l, r := 0, len(tokens)-1; l < r; l, r = l+1, r-1 {
		tokens[l], tokens[r] = tokens[r], tokens[l]
	}
	return tokens
}

// splitWords tokenizes a string into alternating word and whitespace runs,
// both kept, so the original spacing survives reconstruction.
func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	start := 0
	first, _ := utf8.DecodeRuneInString(s)
	inSpace := unicode.IsSpace(first)
	for i, r := range s {
		if unicode.IsSpace(r) != inSpace {
			tokens = append(tokens, s[start:i])
			start = i
			inSpace = !inSpace
		}
	}
	return append(tokens, s[start:])
}
