package study

import (
	"strings"
	"unicode"
)

// stopWords are discarded during keyword extraction. The list is small on
// purpose; retrieval here is plain keyword overlap, not search.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "him": {}, "his": {},
	"how": {}, "its": {}, "may": {}, "who": {}, "did": {}, "get": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "your": {}, "will": {}, "would": {},
	"there": {}, "their": {}, "about": {}, "into": {}, "than": {},
	"them": {}, "then": {}, "they": {}, "these": {}, "those": {},
	"does": {}, "explain": {}, "describe": {}, "define": {}, "give": {},
	"following": {}, "according": {}, "between": {}, "is": {}, "of": {},
	"in": {}, "to": {}, "a": {}, "an": {}, "it": {}, "on": {}, "as": {},
	"at": {}, "by": {}, "be": {}, "or": {}, "do": {}, "we": {}, "if": {},
}

// keywords lowercases the text, splits on non-alphanumeric runes, and keeps
// distinct significant words (3+ runes, not a stop-word) in first-seen order.
func keywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, word := range fields {
		if len([]rune(word)) < 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}

// keywordOverlap is the fraction of want's significant keywords contained in
// got. Returns 0 when either side has nothing significant.
func keywordOverlap(got, want string) float64 {
	wantWords := keywords(want)
	if len(wantWords) == 0 {
		return 0
	}
	gotLower := strings.ToLower(got)
	matched := 0
	for _, word := range wantWords {
		if strings.Contains(gotLower, word) {
			matched++
		}
	}
	return float64(matched) / float64(len(wantWords))
}
