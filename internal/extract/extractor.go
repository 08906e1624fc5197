// Package extract - extractor.go coordinates per-candidate extraction.
package extract

import (
	"context"
	"log"

	"github.com/jonathan/event-scout/internal/browser"
	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/types"
)

// DefaultStrategies returns the standard chain: structured DOM first,
// LLM-assisted fallback second.
func DefaultStrategies(client llm.Client) []Strategy {
	return []Strategy{
		&DOMStrategy{},
		&LLMStrategy{Client: client},
	}
}

// Navigator is the slice of the browser session the extractor needs.
// Tests substitute a fake serving static HTML.
type Navigator interface {
	Navigate(ctx context.Context, url string, wait browser.WaitCondition) error
	HTML(ctx context.Context) (string, error)
}

// profileExtractor is implemented by strategies that can read
// speaker/sponsor profiles out of page prose on their own.
type profileExtractor interface {
	ExtractProfiles(ctx context.Context, page *Page, role string) ([]types.Profile, error)
}

// Extractor visits a candidate's detail page and runs the strategy
// chain over the rendered markup.
type Extractor struct {
	nav        Navigator
	strategies []Strategy
	runID      string // correlates log lines with the pipeline run
	verbose    bool
}

// NewExtractor builds an extractor over the given session. Strategies
// run in the order provided; the first Complete event wins.
func NewExtractor(nav Navigator, strategies []Strategy, runID string, verbose bool) *Extractor {
	return &Extractor{nav: nav, strategies: strategies, runID: runID, verbose: verbose}
}

// Extract navigates to the candidate's detail page and returns the
// extracted Event. Candidates whose required fields cannot be read are
// skipped with a *SkipError, logged, and never retried.
func (x *Extractor) Extract(ctx context.Context, cand types.Candidate) (*types.Event, error) {
	if err := x.nav.Navigate(ctx, cand.URL, browser.WaitCondition{}); err != nil {
		return nil, err
	}

	html, err := x.nav.HTML(ctx)
	if err != nil {
		return nil, &SkipError{URL: cand.URL, Reason: "could not read rendered page", Cause: err}
	}

	page := &Page{URL: cand.URL, HTML: html}

	var lastErr error
	for _, strategy := range x.strategies {
		if !strategy.CanHandle(page) {
			continue
		}
		event, err := strategy.Extract(ctx, page)
		if err != nil {
			if x.verbose {
				log.Printf("[EXTRACT] run %s: strategy %s failed for %s: %v", x.runID, strategy.Name(), cand.URL, err)
			}
			lastErr = err
			continue
		}

		// Listing snippet fields fill gaps the page didn't provide.
		if event.Date == "" {
			event.Date = cand.Date
		}
		if event.Location == "" {
			event.Location = cand.Location
		}

		// Structured markup often names no people; a prose pass fills
		// the speaker list unless the winning strategy reads prose itself.
		if len(event.Speakers) == 0 {
			if _, readsProse := strategy.(profileExtractor); !readsProse {
				x.enrichSpeakers(ctx, page, event)
			}
		}

		if x.verbose {
			log.Printf("[EXTRACT] run %s: %s extracted by strategy %s (%d speakers, %d sponsors)",
				x.runID, cand.URL, strategy.Name(), len(event.Speakers), len(event.Sponsors))
		}
		return event, nil
	}

	if lastErr != nil {
		if skip, ok := lastErr.(*SkipError); ok {
			return nil, skip
		}
		return nil, &SkipError{URL: cand.URL, Reason: "all strategies failed", Cause: lastErr}
	}
	return nil, &SkipError{URL: cand.URL, Reason: "no strategy could handle page"}
}

// enrichSpeakers runs the first profile-capable strategy over the page
// prose to fill an empty speaker list. Failures leave the event as is.
func (x *Extractor) enrichSpeakers(ctx context.Context, page *Page, event *types.Event) {
	for _, strategy := range x.strategies {
		pe, ok := strategy.(profileExtractor)
		if !ok {
			continue
		}
		profiles, err := pe.ExtractProfiles(ctx, page, "speakers")
		if err != nil {
			if x.verbose {
				log.Printf("[EXTRACT] run %s: speaker pass failed for %s: %v", x.runID, page.URL, err)
			}
			return
		}
		event.Speakers = profiles
		return
	}
}
