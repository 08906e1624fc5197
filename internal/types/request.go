package types

import (
	"github.com/go-playground/validator/v10"
)

// Default bounds for a search request. The numeric defaults are
// configuration-driven, not a reproduced contract of the events site.
const (
	DefaultMaxResults     = 5
	MaxResultsCap         = 50
	DefaultTimeoutSeconds = 60
)

// SearchRequest is the input contract from the flow controller.
// It is immutable once a search begins.
type SearchRequest struct {
	Intent         string `json:"intent" validate:"required,min=1"`
	Location       string `json:"location,omitempty"`
	Category       string `json:"category,omitempty"`
	Calendar       string `json:"calendar,omitempty"`
	MaxResults     int    `json:"max_results,omitempty" validate:"omitempty,min=1,max=50"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Normalize fills unset fields with defaults and clamps max_results.
func (r *SearchRequest) Normalize() {
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.MaxResults > MaxResultsCap {
		r.MaxResults = MaxResultsCap
	}
	if r.TimeoutSeconds <= 0 {
		r.TimeoutSeconds = DefaultTimeoutSeconds
	}
}
