// Package assemble deduplicates, orders, and serializes extracted
// events into the external result contract.
package assemble

import (
	"sort"

	"github.com/jonathan/event-scout/internal/types"
)

// Assemble builds the final result set: canonical-URL dedup keeping the
// first successfully extracted version, optional ordering by descending
// relevance score, then truncation to maxResults. Field merging across
// duplicate URLs is never attempted; provenance stays consistent.
func Assemble(events []types.Event, maxResults int, byScore bool) types.ResultSet {
	var deduped []types.Event
	seen := make(map[string]bool)

	for _, event := range events {
		key := CanonicalURL(event.URL)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		event.URL = key
		deduped = append(deduped, event)
	}

	if byScore {
		// Stable sort keeps discovery order among equal scores.
		sort.SliceStable(deduped, func(i, j int) bool {
			return scoreOf(&deduped[i]) > scoreOf(&deduped[j])
		})
	}

	if maxResults > 0 && len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}

	return types.ResultSet{Events: deduped}
}

func scoreOf(e *types.Event) float64 {
	if e.RelevanceScore == nil {
		return -1
	}
	return *e.RelevanceScore
}
