// Package store persists target events keyed by canonical URL.
// Two implementations share the contract: a CSV file store matching the
// curated spreadsheet workflow, and a PostgreSQL store for deployments
// that need a durable shared database.
package store

import (
	"context"

	"github.com/jonathan/event-scout/internal/types"
)

// Row is one persisted target event. The insight columns are populated
// by an external enrichment step and must survive upserts untouched.
type Row struct {
	Event          types.Event `json:"event"`
	EventInsight   string      `json:"event_insight,omitempty"`
	SpeakerInsight string      `json:"speaker_insight,omitempty"`
}

// Store is the persistence contract for target events.
type Store interface {
	// Upsert writes events keyed by canonical URL: existing rows are
	// updated in place preserving insight columns, new rows appended.
	Upsert(ctx context.Context, events []types.Event) error
	// List returns all persisted rows in stored order.
	List(ctx context.Context) ([]Row, error)
	// Close releases any resources held by the store.
	Close() error
}
