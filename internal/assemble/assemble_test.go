package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/event-scout/internal/types"
)

func scored(title, url string, score float64) types.Event {
	return types.Event{Title: title, URL: url, RelevanceScore: &score}
}

func TestAssemble_DeduplicatesByCanonicalURL(t *testing.T) {
	events := []types.Event{
		scored("First extraction", "https://lu.ma/fintech-night", 80),
		scored("Duplicate with tracking", "https://www.lu.ma/fintech-night?utm_source=share", 95),
		scored("Other event", "https://lu.ma/ai-dinner", 60),
	}

	rs := Assemble(events, 10, true)

	require.Len(t, rs.Events, 2)
	// First extracted version wins; no field merging.
	assert.Equal(t, "First extraction", rs.Events[0].Title)
	assert.Equal(t, "https://lu.ma/fintech-night", rs.Events[0].URL)
}

func TestAssemble_OrdersByScoreDescending(t *testing.T) {
	events := []types.Event{
		scored("low", "https://lu.ma/a", 10),
		scored("high", "https://lu.ma/b", 90),
		scored("mid", "https://lu.ma/c", 50),
	}

	rs := Assemble(events, 10, true)

	require.Len(t, rs.Events, 3)
	assert.Equal(t, "high", rs.Events[0].Title)
	assert.Equal(t, "mid", rs.Events[1].Title)
	assert.Equal(t, "low", rs.Events[2].Title)
}

func TestAssemble_UnscoredSortsLast(t *testing.T) {
	events := []types.Event{
		{Title: "unscored", URL: "https://lu.ma/a"},
		scored("scored zero", "https://lu.ma/b", 0),
	}

	rs := Assemble(events, 10, true)

	require.Len(t, rs.Events, 2)
	assert.Equal(t, "scored zero", rs.Events[0].Title)
}

func TestAssemble_DiscoveryOrderWhenDegraded(t *testing.T) {
	events := []types.Event{
		scored("first", "https://lu.ma/a", 10),
		scored("second", "https://lu.ma/b", 90),
	}

	rs := Assemble(events, 10, false)

	require.Len(t, rs.Events, 2)
	assert.Equal(t, "first", rs.Events[0].Title)
}

func TestAssemble_TruncatesToMaxResults(t *testing.T) {
	events := []types.Event{
		scored("a", "https://lu.ma/a", 90),
		scored("b", "https://lu.ma/b", 80),
		scored("c", "https://lu.ma/c", 70),
	}

	rs := Assemble(events, 2, true)

	require.Len(t, rs.Events, 2)
	assert.Equal(t, "a", rs.Events[0].Title)
	assert.Equal(t, "b", rs.Events[1].Title)
}

func TestAssemble_EmptyInput(t *testing.T) {
	rs := Assemble(nil, 5, true)
	assert.Empty(t, rs.Events)
	assert.False(t, rs.Partial)
}

func TestAssemble_Idempotent(t *testing.T) {
	events := []types.Event{
		scored("a", "https://lu.ma/a", 90),
		scored("a again", "https://lu.ma/a?ref=x", 85),
		scored("b", "https://lu.ma/b", 80),
	}

	once := Assemble(events, 10, true)
	twice := Assemble(once.Events, 10, true)

	assert.Equal(t, once.Events, twice.Events)
}
