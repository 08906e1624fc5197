// Package scoring ranks extracted events against the user's search
// intent using an LLM judge, with a keyword-overlap fallback when the
// model is unavailable.
package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/prompts"
	"github.com/jonathan/event-scout/internal/types"
)

// Result contains the scoring outcome for a single event.
// Scores range 0-100; callers must rely only on relative ordering, as
// repeated model calls are not guaranteed bit-exact.
type Result struct {
	Score            float64
	MatchingKeywords []string
	ConversionPath   string
	Degraded         bool // true when the keyword fallback produced the score
}

// scoreResponse represents the expected JSON response from the LLM.
type scoreResponse struct {
	RelevanceScore   float64  `json:"relevance_score"`
	MatchingKeywords []string `json:"matching_keywords"`
	ConversionPath   string   `json:"conversion_path"`
}

// ScoreEvent asks the LLM how well an event matches the request.
// Returns an error when the model call or its output fails; callers
// fall back to KeywordScore.
func ScoreEvent(ctx context.Context, event *types.Event, req types.SearchRequest, client llm.Client) (*Result, error) {
	template := prompts.MustGet("scoring.json", "score-event-relevance")
	prompt := prompts.Format(template, map[string]string{
		"Intent":    req.Intent,
		"Location":  orUnspecified(req.Location),
		"Category":  orUnspecified(req.Category),
		"EventText": event.SearchText(),
	})

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}
	jsonResp = llm.CleanJSONBlock(jsonResp)

	var response scoreResponse
	if err := json.Unmarshal([]byte(jsonResp), &response); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, jsonResp)
	}

	// Clamp to the contract range.
	if response.RelevanceScore < 0 {
		response.RelevanceScore = 0
	}
	if response.RelevanceScore > 100 {
		response.RelevanceScore = 100
	}

	return &Result{
		Score:            response.RelevanceScore,
		MatchingKeywords: response.MatchingKeywords,
		ConversionPath:   response.ConversionPath,
	}, nil
}

// ScoreEvents scores every event in place, annotating RelevanceScore
// and ConversionPath. Events whose model call fails get the
// keyword fallback score; a scoring failure never aborts the search.
// When any event was scored by the fallback the return value is a
// *DegradedError wrapping the first cause, otherwise nil.
func ScoreEvents(ctx context.Context, events []types.Event, req types.SearchRequest, client llm.Client, verbose bool) error {
	keywords := IntentKeywords(req.Intent)
	var degraded *DegradedError

	for i := range events {
		event := &events[i]

		// Check context cancellation before each evaluation.
		select {
		case <-ctx.Done():
			if degraded == nil {
				degraded = &DegradedError{Cause: ctx.Err()}
			}
			applyFallback(event, keywords)
			continue
		default:
		}

		result, err := ScoreEvent(ctx, event, req, client)
		if err != nil {
			if verbose {
				log.Printf("[SCORING] %v, falling back to keyword matching for %q", err, event.Title)
			}
			if degraded == nil {
				degraded = &DegradedError{Cause: err}
			}
			applyFallback(event, keywords)
			continue
		}

		score := result.Score
		event.RelevanceScore = &score
		event.ConversionPath = result.ConversionPath
		if event.ConversionPath == "" {
			event.ConversionPath = defaultConversionPath(event.Title)
		}
	}

	if degraded != nil {
		return degraded
	}
	return nil
}

func applyFallback(event *types.Event, keywords []string) {
	score, _ := KeywordScore(event, keywords)
	event.RelevanceScore = &score
	event.ConversionPath = defaultConversionPath(event.Title)
}

func defaultConversionPath(title string) string {
	if title == "" {
		title = "this event"
	}
	return fmt.Sprintf("Attend %s to network with professionals in your industry.", title)
}

func orUnspecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
