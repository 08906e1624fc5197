package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/event-scout/internal/types"
)

func TestIntentKeywords(t *testing.T) {
	tests := []struct {
		name   string
		intent string
		want   []string
	}{
		{
			name:   "drops stopwords",
			intent: "I want to find events with fintech founders",
			want:   []string{"fintech", "founders"},
		},
		{
			name:   "deduplicates preserving order",
			intent: "crypto crypto investors crypto",
			want:   []string{"crypto", "investors"},
		},
		{
			name:   "strips punctuation",
			intent: "AI, robotics; and healthcare!",
			want:   []string{"ai", "robotics", "healthcare"},
		},
		{
			name:   "empty intent",
			intent: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntentKeywords(tt.intent))
		})
	}
}

func TestKeywordScore(t *testing.T) {
	event := types.Event{
		Title:       "Fintech Founder Mixer",
		Description: "Meet early-stage founders building payments infrastructure.",
	}

	score, matched := KeywordScore(&event, []string{"fintech", "founder", "biotech", "payments"})

	assert.InDelta(t, 75, score, 0.001)
	assert.Equal(t, []string{"fintech", "founder", "payments"}, matched)
}

func TestKeywordScore_NoKeywords(t *testing.T) {
	event := types.Event{Title: "Anything"}
	score, matched := KeywordScore(&event, nil)

	assert.Zero(t, score)
	assert.Nil(t, matched)
}
