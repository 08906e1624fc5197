// Package search drives the events site's discover/search UI and
// collects candidate event links for extraction.
package search

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/jonathan/event-scout/internal/browser"
	"github.com/jonathan/event-scout/internal/types"
)

// Config bounds the listing loop. The defaults are reasonable starting
// points, not a reproduced contract of the events site.
type Config struct {
	BaseURL         string // events platform root, e.g. https://lu.ma
	OverFetchFactor int    // candidates gathered per requested result, to absorb filtering losses
	MaxScrolls      int    // scroll/pagination budget per search
	StagnationLimit int    // consecutive scrolls with no new candidates before stopping early
	RunID           string // correlates log lines with the pipeline run
	Verbose         bool
}

// DefaultConfig returns the standard orchestration bounds.
func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://lu.ma",
		OverFetchFactor: 2,
		MaxScrolls:      8,
		StagnationLimit: 2,
	}
}

// Driver is the slice of the browser session the orchestrator needs.
// Tests substitute a fake serving scripted listing pages.
type Driver interface {
	Navigate(ctx context.Context, url string, wait browser.WaitCondition) error
	HTML(ctx context.Context) (string, error)
	Click(ctx context.Context, selector string) error
	SendKeys(ctx context.Context, selector, text string) error
	ScrollToBottom(ctx context.Context) error
}

// Selectors for the discover surface. The site ships its search box in
// slightly different shells; each is tried in order.
var (
	searchInputSelectors = []string{
		`input[type="search"]`,
		`input[placeholder*="Search"]`,
		`[data-testid="search-input"]`,
	}
	searchOpenSelector = `button[aria-label="Search"]`
)

// Orchestrator translates a search request into the site's native
// interaction sequence and gathers candidates in discovery order.
type Orchestrator struct {
	drv Driver
	cfg Config
}

// NewOrchestrator builds an orchestrator over the given driver.
func NewOrchestrator(drv Driver, cfg Config) *Orchestrator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.OverFetchFactor <= 0 {
		cfg.OverFetchFactor = DefaultConfig().OverFetchFactor
	}
	if cfg.MaxScrolls <= 0 {
		cfg.MaxScrolls = DefaultConfig().MaxScrolls
	}
	if cfg.StagnationLimit <= 0 {
		cfg.StagnationLimit = DefaultConfig().StagnationLimit
	}
	return &Orchestrator{drv: drv, cfg: cfg}
}

// Search navigates the listing surface, enters the query, and scrapes
// link+snippet pairs until enough unique candidates are gathered, the
// scroll budget is exhausted, or the feed stagnates. Zero site results
// return an empty slice, not an error.
func (o *Orchestrator) Search(ctx context.Context, req types.SearchRequest) ([]types.Candidate, error) {
	surface := o.listingURL(req)
	if err := o.drv.Navigate(ctx, surface, browser.WaitCondition{}); err != nil {
		return nil, err
	}

	if err := o.enterQuery(ctx, req); err != nil {
		return nil, err
	}

	target := req.MaxResults * o.cfg.OverFetchFactor

	var candidates []types.Candidate
	seen := make(map[string]bool)
	stagnant := 0

	for scroll := 0; scroll <= o.cfg.MaxScrolls; scroll++ {
		html, err := o.drv.HTML(ctx)
		if err != nil {
			return candidates, err
		}

		added := 0
		for _, cand := range ParseListing(html, o.cfg.BaseURL) {
			if seen[cand.URL] {
				continue
			}
			seen[cand.URL] = true
			candidates = append(candidates, cand)
			added++
		}

		if o.cfg.Verbose {
			log.Printf("[SEARCH] run %s: scroll %d: %d new candidates, %d total", o.cfg.RunID, scroll, added, len(candidates))
		}

		if len(candidates) >= target {
			break
		}

		if added == 0 {
			stagnant++
			if stagnant >= o.cfg.StagnationLimit {
				if o.cfg.Verbose {
					log.Printf("[SEARCH] run %s: feed stagnated after %d empty scrolls, stopping early", o.cfg.RunID, stagnant)
				}
				break
			}
		} else {
			stagnant = 0
		}

		if scroll == o.cfg.MaxScrolls {
			break
		}
		if err := o.drv.ScrollToBottom(ctx); err != nil {
			// Scroll failures end pagination but keep what we have.
			if o.cfg.Verbose {
				log.Printf("[SEARCH] run %s: scroll failed: %v", o.cfg.RunID, err)
			}
			break
		}
	}

	return candidates, nil
}

// listingURL picks the search surface for the request. A named
// calendar or category restricts the feed before the query is typed.
func (o *Orchestrator) listingURL(req types.SearchRequest) string {
	base := strings.TrimSuffix(o.cfg.BaseURL, "/")
	switch {
	case req.Calendar != "":
		return base + "/" + slugify(req.Calendar)
	case req.Category != "":
		return base + "/category/" + slugify(req.Category)
	default:
		return base + "/discover"
	}
}

// enterQuery types the intent into the site's search control and
// submits it. The search UI failing to appear is fatal for this call.
func (o *Orchestrator) enterQuery(ctx context.Context, req types.SearchRequest) error {
	query := req.Intent
	if req.Location != "" {
		// The discover search is free text; location rides on the query.
		query = fmt.Sprintf("%s in %s", req.Intent, req.Location)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		for _, selector := range searchInputSelectors {
			if err := o.drv.SendKeys(ctx, selector, query+"\n"); err == nil {
				return nil
			} else {
				lastErr = err
			}
		}
		// The search box may be behind a toggle; open it and retry.
		if err := o.drv.Click(ctx, searchOpenSelector); err != nil {
			lastErr = err
			break
		}
	}

	return &UIError{Surface: o.listingURL(req), Cause: lastErr}
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), "-")
}

// absoluteURL resolves a listing href against the platform base URL.
func absoluteURL(href, base string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if parsed.IsAbs() {
		return parsed.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(parsed).String()
}
