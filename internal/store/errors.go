package store

import "fmt"

// WriteConflictError indicates the store's read-modify-write cycle kept
// failing within the retry budget. Fatal for the write, never for the
// search that produced the events.
type WriteConflictError struct {
	Path     string
	Attempts int
	Cause    error
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("StoreWriteConflict: %s after %d attempt(s): %v", e.Path, e.Attempts, e.Cause)
}

func (e *WriteConflictError) Unwrap() error {
	return e.Cause
}

// Kind returns the stable error kind name used in the caller contract.
func (e *WriteConflictError) Kind() string {
	return "StoreWriteConflict"
}
