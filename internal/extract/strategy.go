// Package extract turns rendered event pages into structured Event records.
// Extraction is strategy-based: concrete strategies are tried in priority
// order so markup churn on the events site stays isolated from the
// orchestration logic.
package extract

import (
	"context"

	"github.com/jonathan/event-scout/internal/types"
)

// Page is a rendered event detail page handed to strategies.
type Page struct {
	URL  string
	HTML string
}

// Strategy extracts a structured Event from a rendered page.
// CanHandle is a cheap pre-check; Extract may still fail, in which case
// the next strategy in the chain is tried.
type Strategy interface {
	Name() string
	CanHandle(page *Page) bool
	Extract(ctx context.Context, page *Page) (*types.Event, error)
}
