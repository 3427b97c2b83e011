// Package lexical scores token overlap between a query and an investor record.
package lexical

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases text and splits it on any run of non letter/digit runes.
// Input is NFKC-normalized first so full-width and compatibility forms collapse.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(norm.NFKC.String(text)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// TokenSet returns the distinct tokens of all texts.
func TokenSet(texts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			set[token] = struct{}{}
		}
	}
	return set
}

// Overlap counts tokens present in both sets.
func Overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for token := range a {
		if _, ok := b[token]; ok {
			n++
		}
	}
	return n
}

// SharedTokens counts distinct tokens shared by a and b.
func SharedTokens(a, b string) int {
	return Overlap(TokenSet(a), TokenSet(b))
}
