package megatest

import (
	"regexp"
	"strings"
)

// punctuation stripped before tolerant comparison. The original product used
// two diverging character classes at its two call sites; grading must not
// depend on which path a question took, so a single superset of both is used
// everywhere.
const strippedPunct = ".,/#!$%^&*;:{}=-_`~()?'\""

// Normalize canonicalizes free text for tolerant answer comparison:
// lowercase, strip punctuation, collapse whitespace runs, trim. Total on all
// inputs and idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if strings.ContainsRune(strippedPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokenRE splits a sentence into scramble tokens: words (apostrophes kept
// inside, so "don't" is one token) and every punctuation mark on its own.
var tokenRE = regexp.MustCompile(`[A-Za-z0-9]+(?:'[A-Za-z0-9]+)*|[^\sA-Za-z0-9]`)

// Tokenize splits a target sentence the same way the scramble exercise does:
// "He has a bat." -> ["He" "has" "a" "bat" "."].
func Tokenize(sentence string) []string {
	return tokenRE.FindAllString(sentence, -1)
}

// sameTokenMultiset reports whether two token lists contain exactly the same
// tokens with the same multiplicities, in any order.
func sameTokenMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, t := range a {
		seen[t]++
	}
	for _, t := range b {
		seen[t]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
