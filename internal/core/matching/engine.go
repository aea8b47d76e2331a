package matching

import (
	"strings"
	"time"
)

// Tier identifies which matching strategy produced a hit.
type Tier string

const (
	TierExact     Tier = "exact"
	TierSubstring Tier = "substring"
	TierFuzzy     Tier = "fuzzy"
	TierKeyword   Tier = "keyword"
)

// FuzzyThreshold is the minimum similarity ratio the fuzzy tier accepts.
// A pair scoring exactly the threshold matches.
const FuzzyThreshold = 0.80

// MinSharedKeywords is the minimum number of shared non-stop-word tokens
// the keyword tier requires. Sharing a single content word is not enough
// evidence that two questions mean the same thing.
const MinSharedKeywords = 2

// Entry is one knowledge base entry as seen by the matching engine.
// Question is expected to be stored normalized; the engine re-normalizes
// defensively so callers cannot break tier semantics with raw text.
type Entry struct {
	ID        int64
	Question  string
	Answer    string
	CreatedAt time.Time
}

// Result describes a successful match.
type Result struct {
	Entry  Entry
	Answer string
	Tier   Tier
}

// Match runs the four matching tiers in order against a snapshot of the
// knowledge base and returns the first hit. Tiers never re-rank across each
// other: an exact hit always wins even if a later tier would score a
// different entry higher. Within a tier, ties break by earliest CreatedAt.
// Match is deterministic for an identical snapshot and never fails; an
// unmatchable or empty question simply returns ok=false.
func Match(question string, entries []Entry) (Result, bool) {
	q := Normalize(question)
	if q == "" || len(entries) == 0 {
		return Result{}, false
	}

	type candidate struct {
		entry Entry
		key   string
	}
	candidates := make([]candidate, 0, len(entries))
	for _, e := range entries {
		key := Normalize(e.Question)
		if key == "" {
			continue
		}
		candidates = append(candidates, candidate{entry: e, key: key})
	}

	// Tier 1: exact normalized equality.
	var exact *Entry
	for i := range candidates {
		c := &candidates[i]
		if c.key != q {
			continue
		}
		if exact == nil || c.entry.CreatedAt.Before(exact.CreatedAt) {
			exact = &c.entry
		}
	}
	if exact != nil {
		return Result{Entry: *exact, Answer: exact.Answer, Tier: TierExact}, true
	}

	// Tier 2: substring containment in either direction. The entry with the
	// longer overlapping substring wins.
	var sub *Entry
	bestOverlap := 0
	for i := range candidates {
		c := &candidates[i]
		if !strings.Contains(q, c.key) && !strings.Contains(c.key, q) {
			continue
		}
		overlap := len(c.key)
		if len(q) < overlap {
			overlap = len(q)
		}
		if overlap > bestOverlap || (overlap == bestOverlap && sub != nil && c.entry.CreatedAt.Before(sub.CreatedAt)) {
			sub = &c.entry
			bestOverlap = overlap
		}
	}
	if sub != nil {
		return Result{Entry: *sub, Answer: sub.Answer, Tier: TierSubstring}, true
	}

	// Tier 3: fuzzy sequence similarity against the threshold.
	var fuzzy *Entry
	bestRatio := 0.0
	for i := range candidates {
		c := &candidates[i]
		r := Ratio(q, c.key)
		if r < FuzzyThreshold {
			continue
		}
		if r > bestRatio || (r == bestRatio && fuzzy != nil && c.entry.CreatedAt.Before(fuzzy.CreatedAt)) {
			fuzzy = &c.entry
			bestRatio = r
		}
	}
	if fuzzy != nil {
		return Result{Entry: *fuzzy, Answer: fuzzy.Answer, Tier: TierFuzzy}, true
	}

	// Tier 4: keyword overlap on non-stop-word tokens.
	qKeywords := keywordSet(q)
	var keyword *Entry
	bestShared := 0
	for i := range candidates {
		c := &candidates[i]
		shared := 0
		for tok := range keywordSet(c.key) {
			if _, ok := qKeywords[tok]; ok {
				shared++
			}
		}
		if shared < MinSharedKeywords {
			continue
		}
		if shared > bestShared || (shared == bestShared && keyword != nil && c.entry.CreatedAt.Before(keyword.CreatedAt)) {
			keyword = &c.entry
			bestShared = shared
		}
	}
	if keyword != nil {
		return Result{Entry: *keyword, Answer: keyword.Answer, Tier: TierKeyword}, true
	}

	return Result{}, false
}
