package search

import "fmt"

// UIError indicates the search controls never appeared or could not be
// used. It is fatal for the current search call; the caller may retry
// the whole request once.
type UIError struct {
	Surface string
	Cause   error
}

func (e *UIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("SearchUIError: search controls unusable on %s: %v", e.Surface, e.Cause)
	}
	return fmt.Sprintf("SearchUIError: search controls not found on %s", e.Surface)
}

func (e *UIError) Unwrap() error {
	return e.Cause
}

// Kind returns the stable error kind name used in the caller contract.
func (e *UIError) Kind() string {
	return "SearchUIError"
}
