package extract

import "fmt"

// SkipError indicates a single candidate lacked required fields and was
// excluded from results. It is non-fatal: the search continues with the
// remaining candidates.
type SkipError struct {
	URL    string
	Reason string
	Cause  error
}

func (e *SkipError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ExtractionSkipped: %s: %s: %v", e.URL, e.Reason, e.Cause)
	}
	return fmt.Sprintf("ExtractionSkipped: %s: %s", e.URL, e.Reason)
}

func (e *SkipError) Unwrap() error {
	return e.Cause
}

// Kind returns the stable error kind name used in the caller contract.
func (e *SkipError) Kind() string {
	return "ExtractionSkipped"
}
