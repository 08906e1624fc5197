// Package assemble - envelope.go serializes results and errors into
// the external JSON contracts.
package assemble

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/event-scout/internal/types"
)

// kinder is implemented by the typed errors of this module; the kind
// name prefixes the error string in the contract.
type kinder interface {
	Kind() string
}

// MarshalEvents serializes a result set to the output contract: a JSON
// array of events, pretty-printed for downstream consumers. Events with
// no speakers or sponsors serialize those fields as empty arrays, never
// null; only location and relevance_score are nullable in the contract.
func MarshalEvents(rs types.ResultSet) ([]byte, error) {
	events := make([]types.Event, len(rs.Events))
	copy(events, rs.Events)
	for i := range events {
		if events[i].Speakers == nil {
			events[i].Speakers = []types.Profile{}
		}
		if events[i].Sponsors == nil {
			events[i].Sponsors = []types.Profile{}
		}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal events: %w", err)
	}
	return data, nil
}

// envelope is the structured error surface returned to callers in
// place of raw errors.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ErrorEnvelope renders an error as the structured failure contract
// {"success": false, "error": "<ErrorKind>: <message>"}. Errors whose
// type carries a kind already embed it in their message; others are
// labeled InternalError.
func ErrorEnvelope(err error) []byte {
	message := err.Error()
	var k kinder
	if !errors.As(err, &k) {
		message = fmt.Sprintf("InternalError: %s", message)
	}
	data, marshalErr := json.Marshal(envelope{Success: false, Error: message})
	if marshalErr != nil {
		return []byte(`{"success":false,"error":"InternalError: unserializable error"}`)
	}
	return data
}
