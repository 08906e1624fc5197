// Package scoring - keywords.go provides the keyword-overlap fallback
// used when the LLM judge is unavailable.
package scoring

import "strings"

// stopwords are intent words too common to signal relevance.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "about": true, "event": true,
	"events": true, "find": true, "for": true, "i": true, "in": true,
	"is": true, "looking": true, "me": true, "of": true, "on": true,
	"our": true, "the": true, "to": true, "want": true, "we": true,
	"with": true,
}

// IntentKeywords splits a free-text intent into lowercase keywords,
// dropping stopwords and duplicates while preserving order.
func IntentKeywords(intent string) []string {
	fields := strings.Fields(strings.ToLower(intent))
	seen := make(map[string]bool)
	var keywords []string
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()")
		if f == "" || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		keywords = append(keywords, f)
	}
	return keywords
}

// KeywordScore computes a 0-100 relevance score from the fraction of
// intent keywords appearing in the event text. It also returns the
// keywords that matched, in intent order.
func KeywordScore(event interface{ SearchText() string }, keywords []string) (float64, []string) {
	if len(keywords) == 0 {
		return 0, nil
	}

	text := strings.ToLower(event.SearchText())
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}

	return 100 * float64(len(matched)) / float64(len(keywords)), matched
}
