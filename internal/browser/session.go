// Package browser provides a managed headless browser session for
// driving and rendering JavaScript-heavy event pages.
// Requires Chrome/Chromium to be installed on the system.
package browser

import (
	"context"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Config controls session behavior. The retry and backoff bounds are
// reasonable defaults, not a contract of the target site.
type Config struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	NavTimeout     time.Duration // per-attempt navigation budget
	NavRetries     int           // attempts per Navigate call
	RetryBackoff   time.Duration // initial backoff, doubled per retry
	Settle         time.Duration // extra wait for JS rendering after load
	Verbose        bool
}

// DefaultConfig returns sensible defaults for a headless session.
func DefaultConfig() Config {
	return Config{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 900,
		NavTimeout:     30 * time.Second,
		NavRetries:     3,
		RetryBackoff:   2 * time.Second,
		Settle:         2 * time.Second,
	}
}

// WaitCondition describes when a navigation is considered complete.
// A zero value waits for the document body only.
type WaitCondition struct {
	Selector string        // if set, block until this selector is visible
	Settle   time.Duration // extra wait for JS to render content
}

// Session owns one browser context and the single page it navigates.
// A session must not be shared across concurrent searches; concurrent
// navigation on one page corrupts its state.
type Session struct {
	cfg         Config
	browserCtx  context.Context
	cancelFuncs []context.CancelFunc
}

// Open acquires a headless browser context with a fixed viewport.
// Close must be called on every exit path, including caller panics.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.WindowSize(cfg.ViewportWidth, cfg.ViewportHeight),
		)...,
	)

	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		cfg:         cfg,
		browserCtx:  browserCtx,
		cancelFuncs: []context.CancelFunc{ctxCancel, allocCancel},
	}

	// Start the browser eagerly so Open fails fast when Chrome is missing.
	if err := chromedp.Run(browserCtx); err != nil {
		s.Close()
		return nil, &NavigationError{URL: "", Attempts: 1, Cause: err}
	}

	return s, nil
}

// Close releases all browser resources. Safe to call more than once.
func (s *Session) Close() {
	for _, cancel := range s.cancelFuncs {
		cancel()
	}
	s.cancelFuncs = nil
}

// Navigate loads a page and blocks until the wait condition is met.
// Timeouts and transient errors are retried up to the configured bound
// with doubling backoff; exhausted retries surface a NavigationError.
func (s *Session) Navigate(ctx context.Context, url string, wait WaitCondition) error {
	attempts := s.cfg.NavRetries
	if attempts < 1 {
		attempts = 1
	}

	settle := wait.Settle
	if settle == 0 {
		settle = s.cfg.Settle
	}

	tasks := chromedp.Tasks{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if wait.Selector != "" {
		tasks = append(tasks, chromedp.WaitVisible(wait.Selector))
	}
	if settle > 0 {
		tasks = append(tasks, chromedp.Sleep(settle))
	}

	backoff := s.cfg.RetryBackoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if s.cfg.Verbose {
			log.Printf("[BROWSER] Navigating to %s (attempt %d/%d)", url, attempt, attempts)
		}

		runCtx, cancel := s.attemptContext(ctx)
		err := chromedp.Run(runCtx, tasks)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		// The caller's context expiring is not retryable.
		if ctx.Err() != nil {
			break
		}

		if attempt < attempts {
			if s.cfg.Verbose {
				log.Printf("[BROWSER] Navigation failed: %v, retrying in %s", err, backoff)
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &NavigationError{URL: url, Attempts: attempt, Cause: ctx.Err()}
			}
			backoff *= 2
		}
	}

	return &NavigationError{URL: url, Attempts: attempts, Cause: lastErr}
}

// HTML returns the rendered outer HTML of the current page.
func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	runCtx, cancel := s.attemptContext(ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", err
	}
	if s.cfg.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// Click clicks the first visible node matching the selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	runCtx, cancel := s.attemptContext(ctx)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Click(selector, chromedp.NodeVisible))
}

// SendKeys focuses the selector and types text into it.
func (s *Session) SendKeys(ctx context.Context, selector, text string) error {
	runCtx, cancel := s.attemptContext(ctx)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.WaitVisible(selector),
		chromedp.SendKeys(selector, text),
	)
}

// ScrollToBottom scrolls the page to its bottom and waits for new
// content to settle. Used by the listing pagination loop.
func (s *Session) ScrollToBottom(ctx context.Context) error {
	runCtx, cancel := s.attemptContext(ctx)
	defer cancel()
	return chromedp.Run(runCtx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(s.cfg.Settle),
	)
}

// attemptContext bounds a single browser interaction by NavTimeout
// while still honoring the caller's cancellation.
func (s *Session) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	merged, cancelMerge := mergeCancel(s.browserCtx, ctx)
	bounded, cancelTimeout := context.WithTimeout(merged, s.cfg.NavTimeout)
	return bounded, func() {
		cancelTimeout()
		cancelMerge()
	}
}

// mergeCancel returns a context derived from base that is also
// cancelled when other is cancelled. chromedp actions must run against
// the browser context, but the caller's deadline still applies.
func mergeCancel(base, other context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(base)
	stop := make(chan struct{})
	go func() {
		select {
		case <-other.Done():
			cancel()
		case <-stop:
		}
	}()
	return merged, func() {
		close(stop)
		cancel()
	}
}
