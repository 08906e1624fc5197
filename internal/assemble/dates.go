// Package assemble - dates.go provides best-effort event date parsing.
package assemble

import (
	"strings"
	"time"

	"github.com/jonathan/event-scout/internal/types"
)

// dateLayouts are tried in order against the platform's native date
// strings. Layouts without a year assume the current year.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
}

var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"Monday, January 2",
}

// ParseEventDate parses a platform-native date string. The second
// return value is false when no layout matched.
func ParseEventDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	// Date ranges keep their first day.
	if idx := strings.IndexAny(raw, "-–"); idx > 0 && !strings.Contains(raw[:idx], "T") {
		if t, ok := ParseEventDate(raw[:idx], now); ok {
			return t, true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.AddDate(now.Year(), 0, 0), true
		}
	}
	return time.Time{}, false
}

// FilterPast drops events whose date parses to before now. Events with
// missing or unparseable dates are kept; absence of a date is not
// evidence the event has passed.
func FilterPast(events []types.Event, now time.Time) []types.Event {
	var kept []types.Event
	for _, event := range events {
		when, ok := ParseEventDate(event.Date, now)
		if ok && when.Before(now.Truncate(24*time.Hour)) {
			continue
		}
		kept = append(kept, event)
	}
	return kept
}
