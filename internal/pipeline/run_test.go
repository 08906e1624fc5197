package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/event-scout/internal/browser"
	"github.com/jonathan/event-scout/internal/extract"
	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/observability"
	"github.com/jonathan/event-scout/internal/store"
	"github.com/jonathan/event-scout/internal/types"
)

// pageNavigator serves a fixed document per URL.
type pageNavigator struct {
	pages map[string]string
	last  string
}

func (p *pageNavigator) Navigate(_ context.Context, url string, _ browser.WaitCondition) error {
	p.last = url
	return nil
}

func (p *pageNavigator) HTML(_ context.Context) (string, error) {
	return p.pages[p.last], nil
}

type stubLLM struct {
	content string
	json    string
}

func (s *stubLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.content, nil
}

func (s *stubLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.json, nil
}

func (s *stubLLM) Close() error { return nil }

func eventPage(title string) string {
	return `<html><body><h1>` + title + `</h1></body></html>`
}

func TestExtractCandidates_SkipsMalformedPages(t *testing.T) {
	nav := &pageNavigator{pages: map[string]string{
		"https://lu.ma/good":   eventPage("Good Event"),
		"https://lu.ma/broken": "<html><body><div>nothing</div></body></html>",
		"https://lu.ma/also":   eventPage("Also Good"),
	}}

	x := extract.NewExtractor(nav, []extract.Strategy{&extract.DOMStrategy{}}, "", false)
	candidates := []types.Candidate{
		{URL: "https://lu.ma/good"},
		{URL: "https://lu.ma/broken"},
		{URL: "https://lu.ma/also"},
	}

	events, partial := extractCandidates(context.Background(), x, candidates, observability.NewPrinter(nil), false)

	assert.False(t, partial)
	require.Len(t, events, 2)
	assert.Equal(t, "Good Event", events[0].Title)
	assert.Equal(t, "Also Good", events[1].Title)
}

func TestExtractCandidates_DeadlineMarksPartial(t *testing.T) {
	nav := &pageNavigator{pages: map[string]string{
		"https://lu.ma/a": eventPage("A"),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	x := extract.NewExtractor(nav, []extract.Strategy{&extract.DOMStrategy{}}, "", false)
	events, partial := extractCandidates(ctx, x, []types.Candidate{{URL: "https://lu.ma/a"}}, observability.NewPrinter(nil), false)

	assert.True(t, partial)
	assert.Empty(t, events)
}

// scriptedSearcher returns a canned search outcome.
type scriptedSearcher struct {
	candidates []types.Candidate
	err        error
}

func (s *scriptedSearcher) Search(_ context.Context, _ types.SearchRequest) ([]types.Candidate, error) {
	return s.candidates, s.err
}

func TestGatherCandidates_DeadlineKeepsProgress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	searcher := &scriptedSearcher{
		candidates: []types.Candidate{{URL: "https://lu.ma/a"}, {URL: "https://lu.ma/b"}},
		err:        context.DeadlineExceeded,
	}

	candidates, partial, err := gatherCandidates(ctx, searcher, types.SearchRequest{Intent: "x"})

	require.NoError(t, err)
	assert.True(t, partial)
	require.Len(t, candidates, 2)
	assert.Equal(t, "https://lu.ma/a", candidates[0].URL)
}

func TestGatherCandidates_SearchFailureAborts(t *testing.T) {
	searcher := &scriptedSearcher{err: errors.New("search box never appeared")}

	candidates, partial, err := gatherCandidates(context.Background(), searcher, types.SearchRequest{Intent: "x"})

	require.Error(t, err)
	assert.False(t, partial)
	assert.Nil(t, candidates)
}

func TestAnnotateHighlights(t *testing.T) {
	client := &stubLLM{content: "Meet <mark>fintech founders</mark> tonight."}
	events := []types.Event{
		{Title: "A", Description: "Meet fintech founders tonight."},
		{Title: "B"}, // no description, must be left alone
	}

	annotateHighlights(context.Background(), client, events, "fintech founders")

	assert.Equal(t, "Meet <mark>fintech founders</mark> tonight.", events[0].Highlight)
	assert.Empty(t, events[1].Highlight)
}

func TestOpenStore(t *testing.T) {
	t.Run("no persistence configured", func(t *testing.T) {
		s, err := openStore(context.Background(), RunOptions{})
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("csv path", func(t *testing.T) {
		s, err := openStore(context.Background(), RunOptions{
			StorePath: filepath.Join(t.TempDir(), "events.csv"),
		})
		require.NoError(t, err)
		require.NotNil(t, s)
		_, ok := s.(*store.CSVStore)
		assert.True(t, ok)
	})
}

func TestRunPipeline_RejectsInvalidRequest(t *testing.T) {
	_, err := RunPipeline(context.Background(), RunOptions{
		Request: types.SearchRequest{}, // missing intent
	})
	require.Error(t, err)
}
