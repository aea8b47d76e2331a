// Package filter decides which transcribed utterances are worth routing to
// the matching engine. Transcription produces plenty of noise - filler
// sounds, greetings, half sentences - that should never reach matching or
// create an escalation. Pure functions only.
package filter

import (
	"strings"

	"github.com/example/frontdesk/internal/core/matching"
)

// fillerTokens are acknowledgements and noise words. An utterance made up
// entirely of these is never actionable.
var fillerTokens = map[string]struct{}{
	"um": {}, "uh": {}, "ah": {}, "er": {}, "hmm": {}, "mhm": {},
	"hello": {}, "hi": {}, "hey": {},
	"yes": {}, "no": {}, "yeah": {}, "yep": {}, "nope": {}, "okay": {}, "ok": {},
	"thanks": {}, "thank": {}, "you": {},
	"bye": {}, "goodbye": {},
}

// interrogativeLeads mark an utterance as a question when they appear as the
// first token.
var interrogativeLeads = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "who": {}, "whom": {}, "whose": {},
	"which": {}, "how": {}, "why": {},
	"is": {}, "are": {}, "am": {}, "was": {}, "were": {},
	"do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "will": {}, "would": {}, "should": {}, "may": {},
	"have": {}, "has": {},
}

// imperativeLeads mark an utterance as an actionable request even without an
// interrogative marker ("book me an appointment", "tell me your hours").
var imperativeLeads = map[string]struct{}{
	"book": {}, "schedule": {}, "cancel": {}, "reschedule": {},
	"tell": {}, "give": {}, "let": {},
}

// imperativePrefixes are multi-word request openings, checked against the
// normalized utterance.
var imperativePrefixes = []string{
	"i need", "i want", "i would like", "id like", "im looking for",
}

// ShouldConsider reports whether an utterance should be routed to matching.
// It rejects empty and single-token input, pure filler, and statements that
// are neither interrogative nor recognizable requests. Malformed input
// degrades to reject; this function never errors.
func ShouldConsider(utterance string) bool {
	tokens := matching.Tokens(utterance)
	if len(tokens) < 2 {
		return false
	}

	allFiller := true
	for _, tok := range tokens {
		if _, ok := fillerTokens[tok]; !ok {
			allFiller = false
			break
		}
	}
	if allFiller {
		return false
	}

	// Question mark is checked on the raw text; normalization strips it.
	if strings.Contains(utterance, "?") {
		return true
	}

	if _, ok := interrogativeLeads[tokens[0]]; ok {
		return true
	}

	if _, ok := imperativeLeads[tokens[0]]; ok {
		return true
	}

	normalized := strings.Join(tokens, " ")
	for _, prefix := range imperativePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return true
		}
	}

	return false
}
