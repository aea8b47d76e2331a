// Package matching contains the pure business logic for knowledge base
// matching. This is part of the Functional Core - no I/O, only pure functions.
package matching

import (
	"strings"
	"unicode"
)

// Normalize lowercases the input, strips punctuation, collapses runs of
// whitespace to single spaces, and trims the result. All tier comparisons
// operate on normalized text.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			lastSpace = true
		default:
			// Punctuation is dropped entirely.
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Tokens normalizes the input and splits it into words.
func Tokens(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// stopWords are excluded from the keyword overlap tier. Sharing only glue
// words like "the" or "is" says nothing about whether two questions mean
// the same thing.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"is": {}, "are": {}, "am": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {},
	"have": {}, "has": {}, "had": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "should": {}, "may": {}, "might": {},
	"i": {}, "you": {}, "we": {}, "they": {}, "he": {}, "she": {}, "it": {},
	"my": {}, "your": {}, "our": {}, "their": {}, "me": {}, "us": {},
	"what": {}, "when": {}, "where": {}, "who": {}, "which": {}, "how": {}, "why": {},
	"and": {}, "or": {}, "but": {}, "if": {}, "then": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "at": {}, "for": {}, "with": {},
	"about": {}, "from": {}, "by": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "there": {}, "here": {},
	"not": {}, "no": {}, "yes": {}, "so": {}, "too": {}, "very": {}, "just": {},
	"please": {},
}

// keywordSet returns the non-stop-word tokens of s as a set.
func keywordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(s) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
