// Package store - csv.go implements the CSV-backed target events store.
package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jonathan/event-scout/internal/assemble"
	"github.com/jonathan/event-scout/internal/types"
)

// csvHeader defines the column layout. The insight columns are owned by
// the external enrichment step.
var csvHeader = []string{
	"title", "url", "date", "location", "description",
	"speakers", "sponsors", "relevance_score",
	"event_insight", "speaker_insight",
}

// CSVStore persists rows in a single CSV file with whole-file
// rewrite-on-write. It offers no transactional guarantee beyond that;
// concurrent writers inside one process are serialized by the mutex,
// and separate processes must not share a file.
type CSVStore struct {
	path    string
	retries int
	backoff time.Duration
	mu      sync.Mutex
}

// NewCSVStore opens (or will create on first write) the store file.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{
		path:    path,
		retries: 3,
		backoff: 200 * time.Millisecond,
	}
}

// Close implements Store. The CSV store holds no open resources.
func (s *CSVStore) Close() error { return nil }

// List returns all persisted rows in file order.
func (s *CSVStore) List(_ context.Context) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

// Upsert performs the read-modify-rewrite cycle under the store lock.
// Rows matched by canonical URL are updated in place with their insight
// columns preserved; unmatched events are appended. File errors are
// retried with backoff and surface a WriteConflictError when exhausted.
func (s *CSVStore) Upsert(ctx context.Context, events []types.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		if err := s.upsertOnce(events); err != nil {
			lastErr = err
			select {
			case <-time.After(s.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return &WriteConflictError{Path: s.path, Attempts: attempt, Cause: ctx.Err()}
			}
			continue
		}
		return nil
	}
	return &WriteConflictError{Path: s.path, Attempts: s.retries, Cause: lastErr}
}

func (s *CSVStore) upsertOnce(events []types.Event) error {
	rows, err := s.readAll()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(rows))
	for i, row := range rows {
		index[assemble.CanonicalURL(row.Event.URL)] = i
	}

	for _, event := range events {
		key := assemble.CanonicalURL(event.URL)
		if key == "" {
			continue
		}
		event.URL = key
		if i, exists := index[key]; exists {
			// Insight columns are curated externally; keep them.
			rows[i].Event = event
		} else {
			rows = append(rows, Row{Event: event})
			index[key] = len(rows) - 1
		}
	}

	return s.writeAll(rows)
}

func (s *CSVStore) readAll() ([]Row, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read store row: %w", err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		row := Row{
			Event: types.Event{
				Title:       field("title"),
				URL:         field("url"),
				Date:        field("date"),
				Location:    field("location"),
				Description: field("description"),
			},
			EventInsight:   field("event_insight"),
			SpeakerInsight: field("speaker_insight"),
		}
		if row.Event.URL == "" {
			continue
		}
		if raw := field("speakers"); raw != "" {
			_ = json.Unmarshal([]byte(raw), &row.Event.Speakers)
		}
		if raw := field("sponsors"); raw != "" {
			_ = json.Unmarshal([]byte(raw), &row.Event.Sponsors)
		}
		if raw := field("relevance_score"); raw != "" {
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				row.Event.RelevanceScore = &score
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// writeAll rewrites the whole file via a temp file and rename so a
// failed write never truncates existing data.
func (s *CSVStore) writeAll(rows []Row) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".target_events_*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write store header: %w", err)
	}

	for _, row := range rows {
		record, err := encodeRow(row)
		if err != nil {
			_ = tmp.Close()
			return err
		}
		if err := writer.Write(record); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to write store row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to flush store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp store file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func encodeRow(row Row) ([]string, error) {
	speakers, err := json.Marshal(row.Event.Speakers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode speakers: %w", err)
	}
	sponsors, err := json.Marshal(row.Event.Sponsors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sponsors: %w", err)
	}

	score := ""
	if row.Event.RelevanceScore != nil {
		score = strconv.FormatFloat(*row.Event.RelevanceScore, 'f', -1, 64)
	}

	return []string{
		row.Event.Title,
		row.Event.URL,
		row.Event.Date,
		row.Event.Location,
		row.Event.Description,
		string(speakers),
		string(sponsors),
		score,
		row.EventInsight,
		row.SpeakerInsight,
	}, nil
}
