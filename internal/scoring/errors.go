package scoring

import "fmt"

// DegradedError indicates the AI scoring call failed and results were
// ranked by the keyword fallback instead. Non-fatal: it is reported
// alongside results, never instead of them.
type DegradedError struct {
	Cause error
}

func (e *DegradedError) Error() string {
	return fmt.Sprintf("ScoringDegraded: fell back to keyword ranking: %v", e.Cause)
}

func (e *DegradedError) Unwrap() error {
	return e.Cause
}

// Kind returns the stable error kind name used in the caller contract.
func (e *DegradedError) Kind() string {
	return "ScoringDegraded"
}
