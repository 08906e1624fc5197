package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventComplete(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"title and url", Event{Title: "Fintech Night", URL: "https://lu.ma/x"}, true},
		{"missing title", Event{URL: "https://lu.ma/x"}, false},
		{"missing url", Event{Title: "Fintech Night"}, false},
		{"empty people lists still complete", Event{Title: "T", URL: "u", Speakers: nil, Sponsors: nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Complete())
		})
	}
}

func TestPruneProfiles(t *testing.T) {
	event := Event{
		Title: "T", URL: "u",
		Speakers: []Profile{
			{Name: "Dana Osei", Title: "CTO"},
			{Title: "Mystery guest"}, // nameless, dropped
			{Name: "Lee Park"},
		},
		Sponsors: []Profile{
			{Company: "Acme"}, // nameless, dropped
		},
	}

	event.PruneProfiles()

	assert.Equal(t, []Profile{{Name: "Dana Osei", Title: "CTO"}, {Name: "Lee Park"}}, event.Speakers)
	assert.Empty(t, event.Sponsors)
}

func TestSearchText_IncludesPeople(t *testing.T) {
	event := Event{
		Title:       "AI Builders Dinner",
		Description: "Hands-on demos.",
		Location:    "San Francisco",
		Speakers:    []Profile{{Name: "Dana Osei", Company: "Plaid"}},
		Sponsors:    []Profile{{Name: "Acme Cloud"}},
	}

	text := event.SearchText()
	assert.Contains(t, text, "AI Builders Dinner")
	assert.Contains(t, text, "Hands-on demos.")
	assert.Contains(t, text, "San Francisco")
	assert.Contains(t, text, "Dana Osei (Plaid)")
	assert.Contains(t, text, "Acme Cloud")
}
