package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/event-scout/internal/assemble"
	"github.com/jonathan/event-scout/internal/types"
)

// PostgresStore persists rows in a target_events table. It implements
// the same upsert contract as the CSV store: canonical URL is the key
// and the insight columns survive updates.
//
// Expected schema:
//
//	CREATE TABLE target_events (
//	    url             TEXT PRIMARY KEY,
//	    title           TEXT NOT NULL,
//	    date            TEXT,
//	    location        TEXT,
//	    description     TEXT,
//	    speakers        JSONB,
//	    sponsors        JSONB,
//	    relevance_score DOUBLE PRECISION,
//	    event_insight   TEXT NOT NULL DEFAULT '',
//	    speaker_insight TEXT NOT NULL DEFAULT '',
//	    updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Upsert inserts or updates each event keyed by canonical URL. The
// insight columns are never touched by the update clause.
func (s *PostgresStore) Upsert(ctx context.Context, events []types.Event) error {
	for _, event := range events {
		key := assemble.CanonicalURL(event.URL)
		if key == "" {
			continue
		}

		speakers, err := json.Marshal(event.Speakers)
		if err != nil {
			return fmt.Errorf("failed to encode speakers: %w", err)
		}
		sponsors, err := json.Marshal(event.Sponsors)
		if err != nil {
			return fmt.Errorf("failed to encode sponsors: %w", err)
		}

		_, err = s.pool.Exec(ctx,
			`INSERT INTO target_events (url, title, date, location, description, speakers, sponsors, relevance_score)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (url) DO UPDATE SET
			     title = $2, date = $3, location = $4, description = $5,
			     speakers = $6, sponsors = $7, relevance_score = $8,
			     updated_at = NOW()`,
			key, event.Title, event.Date, event.Location, event.Description,
			speakers, sponsors, event.RelevanceScore,
		)
		if err != nil {
			return &WriteConflictError{Path: "target_events", Attempts: 1, Cause: err}
		}
	}
	return nil
}

// List retrieves all persisted rows ordered by last update.
func (s *PostgresStore) List(ctx context.Context) ([]Row, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT url, title, COALESCE(date, ''), COALESCE(location, ''), COALESCE(description, ''),
		        speakers, sponsors, relevance_score, event_insight, speaker_insight
		 FROM target_events ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		var speakers, sponsors []byte
		var score *float64
		if err := rows.Scan(
			&row.Event.URL, &row.Event.Title, &row.Event.Date, &row.Event.Location, &row.Event.Description,
			&speakers, &sponsors, &score, &row.EventInsight, &row.SpeakerInsight,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		if len(speakers) > 0 {
			_ = json.Unmarshal(speakers, &row.Event.Speakers)
		}
		if len(sponsors) > 0 {
			_ = json.Unmarshal(sponsors, &row.Event.Sponsors)
		}
		row.Event.RelevanceScore = score
		out = append(out, row)
	}
	return out, nil
}
