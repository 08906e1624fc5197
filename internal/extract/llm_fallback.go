// Package extract - llm_fallback.go implements LLM-assisted extraction
// for pages whose markup exposes no structured fields.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/schemas"
	"github.com/jonathan/event-scout/internal/types"
)

// maxPromptChars bounds the page text sent to the model.
const maxPromptChars = 12000

// LLMStrategy extracts event fields by prompting a language model with
// the page's main text. Output is schema-validated before use; profiles
// failing required-field validation are dropped rather than propagated.
type LLMStrategy struct {
	Client llm.Client
}

// Name identifies the strategy in logs.
func (s *LLMStrategy) Name() string { return "llm" }

// CanHandle accepts any page with a usable amount of text. This is the
// last strategy in the chain.
func (s *LLMStrategy) CanHandle(page *Page) bool {
	text, err := MainText(page.HTML)
	return err == nil && len(text) >= 80
}

// Extract prompts the model with a field-constrained schema and merges
// the validated response into an Event.
func (s *LLMStrategy) Extract(ctx context.Context, page *Page) (*types.Event, error) {
	text, err := MainText(page.HTML)
	if err != nil {
		return nil, &SkipError{URL: page.URL, Reason: "unparseable HTML", Cause: err}
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := llm.BuildExtractionPrompt(llm.EventDetailsSchema(), text)
	raw, err := s.Client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("LLM extraction failed: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)

	if err := schemas.ValidateEventExtraction([]byte(raw)); err != nil {
		return nil, fmt.Errorf("LLM output rejected by schema: %w", err)
	}

	var payload struct {
		Title       string          `json:"title"`
		Date        string          `json:"date"`
		Location    string          `json:"location"`
		Description string          `json:"description"`
		Speakers    []types.Profile `json:"speakers"`
		Sponsors    []types.Profile `json:"sponsors"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, raw)
	}

	event := &types.Event{
		Title:       payload.Title,
		URL:         page.URL,
		Date:        payload.Date,
		Location:    payload.Location,
		Description: payload.Description,
		Speakers:    payload.Speakers,
		Sponsors:    payload.Sponsors,
	}
	event.PruneProfiles()

	if !event.Complete() {
		return nil, &SkipError{URL: page.URL, Reason: "LLM found no event title"}
	}
	return event, nil
}

// ExtractProfiles prompts the model for the people or organizations
// the page's prose names in the given role ("speakers" or "sponsors").
// Profiles without a name are dropped.
func (s *LLMStrategy) ExtractProfiles(ctx context.Context, page *Page, role string) ([]types.Profile, error) {
	text, err := MainText(page.HTML)
	if err != nil {
		return nil, &SkipError{URL: page.URL, Reason: "unparseable HTML", Cause: err}
	}
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := llm.BuildExtractionPrompt(llm.ProfileListSchema(role), text)
	raw, err := s.Client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM profile extraction failed: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)

	var payload struct {
		Profiles []types.Profile `json:"profiles"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w (content: %s)", err, raw)
	}

	kept := payload.Profiles[:0]
	for _, p := range payload.Profiles {
		if p.Valid() {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
