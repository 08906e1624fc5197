// Package pipeline provides the high-level orchestration for the event discovery process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/event-scout/internal/assemble"
	"github.com/jonathan/event-scout/internal/browser"
	"github.com/jonathan/event-scout/internal/extract"
	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/observability"
	"github.com/jonathan/event-scout/internal/scoring"
	"github.com/jonathan/event-scout/internal/search"
	"github.com/jonathan/event-scout/internal/store"
	"github.com/jonathan/event-scout/internal/types"
)

// highlightConcurrency bounds simultaneous annotation calls so a large
// candidate pool does not fan out into unbounded LLM traffic.
const highlightConcurrency = 2

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Request     types.SearchRequest
	APIKey      string
	BaseURL     string // listing site base, defaults to the discover surface
	Headless    bool
	StorePath   string // CSV store path; empty disables persistence
	DatabaseURL string // Postgres store; takes precedence over StorePath
	Verbose     bool
}

// RunPipeline executes the full search pipeline: search, extract,
// score, assemble, persist. A deadline hit mid-extraction returns the
// events gathered so far with Partial set rather than an error.
func RunPipeline(ctx context.Context, opts RunOptions) (*types.ResultSet, error) {
	printer := observability.NewPrinter(os.Stdout)

	req := opts.Request
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Normalize()

	runID := uuid.New().String()
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Starting run %s\n", runID)
		printer.PrintRequest(&req)
	}

	deadline := time.Duration(req.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	// Open the persistence layer first so a bad store path fails before
	// any browser work.
	target, err := openStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	if target != nil {
		defer func() { _ = target.Close() }()
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	fmt.Printf("Step 1/5: Opening browser session...\n")
	browserCfg := browser.DefaultConfig()
	browserCfg.Headless = opts.Headless
	browserCfg.Verbose = opts.Verbose
	session, err := browser.Open(ctx, browserCfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	fmt.Printf("Step 2/5: Searching for events matching %q...\n", req.Intent)
	searchCfg := search.DefaultConfig()
	if opts.BaseURL != "" {
		searchCfg.BaseURL = opts.BaseURL
	}
	searchCfg.Verbose = opts.Verbose
	searchCfg.RunID = runID
	candidates, searchPartial, err := gatherCandidates(ctx, search.NewOrchestrator(session, searchCfg), req)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintCandidates(candidates)
	}

	fmt.Printf("Step 3/5: Extracting details from %d candidate pages...\n", len(candidates))
	extractor := extract.NewExtractor(session, extract.DefaultStrategies(client), runID, opts.Verbose)
	events, partial := extractCandidates(ctx, extractor, candidates, printer, opts.Verbose)
	partial = partial || searchPartial

	events = assemble.FilterPast(events, time.Now())

	fmt.Printf("Step 4/5: Scoring %d events for relevance...\n", len(events))
	scoreErr := scoring.ScoreEvents(ctx, events, req, client, opts.Verbose)
	degraded := scoreErr != nil
	if degraded {
		fmt.Printf("Warning: %v, preserving keyword ranking\n", scoreErr)
	}

	annotateHighlights(ctx, client, events, req.Intent)

	fmt.Printf("Step 5/5: Assembling result set...\n")
	rs := assemble.Assemble(events, req.MaxResults, !degraded)
	rs.Partial = partial
	if opts.Verbose {
		printer.PrintResultSet(&rs)
	}

	if target != nil && len(rs.Events) > 0 {
		if err := target.Upsert(ctx, rs.Events); err != nil {
			fmt.Printf("Warning: failed to persist events: %v\n", err)
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Persisted %d events\n", len(rs.Events))
		}
	}

	return &rs, nil
}

// candidateSearcher is the slice of the search orchestrator the
// pipeline depends on. Tests substitute a scripted implementation.
type candidateSearcher interface {
	Search(ctx context.Context, req types.SearchRequest) ([]types.Candidate, error)
}

// gatherCandidates runs the search phase. A deadline hit mid-scroll is
// not fatal: the candidates gathered so far carry forward and the run
// is marked partial. Other search failures abort the run.
func gatherCandidates(ctx context.Context, searcher candidateSearcher, req types.SearchRequest) ([]types.Candidate, bool, error) {
	candidates, err := searcher.Search(ctx, req)
	if err == nil {
		return candidates, false, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		fmt.Printf("Warning: deadline reached during search, continuing with %d candidates\n", len(candidates))
		return candidates, true, nil
	}
	return nil, false, err
}

// extractCandidates walks the candidate list sequentially through the
// shared browser session. Skipped pages are logged and dropped; a
// deadline hit stops the walk and marks the run partial.
func extractCandidates(ctx context.Context, extractor *extract.Extractor, candidates []types.Candidate, printer *observability.Printer, verbose bool) ([]types.Event, bool) {
	var events []types.Event
	partial := false

	for i, cand := range candidates {
		if ctx.Err() != nil {
			fmt.Printf("Warning: deadline reached after %d of %d pages, returning partial results\n", i, len(candidates))
			partial = true
			break
		}

		event, err := extractor.Extract(ctx, cand)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Printf("Warning: deadline reached after %d of %d pages, returning partial results\n", i, len(candidates))
				partial = true
				break
			}
			var skip *extract.SkipError
			if errors.As(err, &skip) {
				fmt.Printf("Warning: skipping %s: %s\n", skip.URL, skip.Reason)
			} else {
				fmt.Printf("Warning: skipping %s: %v\n", cand.URL, err)
			}
			continue
		}

		if verbose {
			printer.PrintEvent(event)
		}
		events = append(events, *event)
	}

	return events, partial
}

// annotateHighlights runs entity annotation across events with bounded
// concurrency. Annotation is decorative; failures leave the plain
// description in place.
func annotateHighlights(ctx context.Context, client llm.Client, events []types.Event, intent string) {
	sem := semaphore.NewWeighted(highlightConcurrency)
	g, gCtx := errgroup.WithContext(ctx)

	for i := range events {
		if events[i].Description == "" {
			continue
		}
		i := i
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)
			events[i].Highlight = scoring.Highlight(gCtx, client, events[i].Description, intent)
			return nil
		})
	}

	_ = g.Wait()
}

// openStore picks the persistence backend from options. Postgres wins
// when both are configured.
func openStore(ctx context.Context, opts RunOptions) (store.Store, error) {
	if opts.DatabaseURL != "" {
		pg, err := store.ConnectPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			return nil, nil
		}
		return pg, nil
	}
	if opts.StorePath != "" {
		return store.NewCSVStore(opts.StorePath), nil
	}
	return nil, nil
}
