package assemble

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/event-scout/internal/types"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"rfc3339", "2026-07-01T19:00:00Z", time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC), true},
		{"iso date", "2026-07-01", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"long form", "July 1, 2026", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"short form", "Jul 1, 2026", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"yearless assumes current year", "July 1", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"range keeps first day", "July 1, 2026 - July 3, 2026", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), true},
		{"unparseable", "Next Tuesday-ish", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseEventDate(tt.in, testNow)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPast(t *testing.T) {
	events := []types.Event{
		{Title: "past", Date: "2026-01-10"},
		{Title: "future", Date: "2026-12-01"},
		{Title: "undated"},
		{Title: "unparseable", Date: "sometime soon"},
	}

	kept := FilterPast(events, testNow)

	titles := make([]string, 0, len(kept))
	for _, e := range kept {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"future", "undated", "unparseable"}, titles)
}

func TestFilterPast_KeepsSameDayEvents(t *testing.T) {
	events := []types.Event{{Title: "today", Date: "2026-06-15"}}
	kept := FilterPast(events, testNow)
	require.Len(t, kept, 1)
}
