package browser

import "fmt"

// NavigationError indicates a page failed to load or respond within
// the retry budget. It is surfaced to the caller rather than crashing
// the process; the caller may retry the whole search.
type NavigationError struct {
	URL      string
	Attempts int
	Cause    error
}

func (e *NavigationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("NavigationError: browser failed to start after %d attempt(s): %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("NavigationError: %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Cause)
}

func (e *NavigationError) Unwrap() error {
	return e.Cause
}

// Kind returns the stable error kind name used in the caller contract.
func (e *NavigationError) Kind() string {
	return "NavigationError"
}
