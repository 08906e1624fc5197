// Package types provides type definitions for structured data used throughout the event-scout system.
package types

// Profile describes a person or organization attached to an event.
// The same shape is used for speakers and sponsors.
type Profile struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Bio     string `json:"bio,omitempty"`
	Image   string `json:"image,omitempty"`
	Website string `json:"website,omitempty"`
}

// Valid reports whether the profile carries enough information to emit.
// A profile without a name is dropped rather than emitted with a placeholder.
func (p *Profile) Valid() bool {
	return p.Name != ""
}

// Event is the core output entity of a search. URL is the canonical
// event URL and uniquely identifies an Event within one result set.
type Event struct {
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Date           string    `json:"date"`
	Location       string    `json:"location,omitempty"`
	Description    string    `json:"description,omitempty"`
	Sponsors       []Profile `json:"sponsors"`
	Speakers       []Profile `json:"speakers"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
	Highlight      string    `json:"highlight,omitempty"`
	ConversionPath string    `json:"conversion_path,omitempty"`
}

// Complete reports whether the event has the required fields.
// Partially structured events with empty speakers/sponsors are still valid.
func (e *Event) Complete() bool {
	return e.Title != "" && e.URL != ""
}

// PruneProfiles removes speakers and sponsors that fail required-field
// validation. Ordering of the surviving profiles is preserved.
func (e *Event) PruneProfiles() {
	e.Speakers = validProfiles(e.Speakers)
	e.Sponsors = validProfiles(e.Sponsors)
}

func validProfiles(profiles []Profile) []Profile {
	if len(profiles) == 0 {
		return profiles
	}
	kept := profiles[:0]
	for _, p := range profiles {
		if p.Valid() {
			kept = append(kept, p)
		}
	}
	return kept
}

// SearchText returns the event's text content joined for relevance
// comparison: title, description, location, and speaker/sponsor names.
func (e *Event) SearchText() string {
	text := e.Title
	if e.Description != "" {
		text += "\n" + e.Description
	}
	if e.Location != "" {
		text += "\n" + e.Location
	}
	for _, s := range e.Speakers {
		text += "\n" + s.Name
		if s.Company != "" {
			text += " (" + s.Company + ")"
		}
	}
	for _, s := range e.Sponsors {
		text += "\n" + s.Name
	}
	return text
}

// Candidate is an event link discovered on the listing surface, plus
// the minimal snippet fields needed to decide whether to visit it.
// Candidates exist only during orchestration and are never persisted.
type Candidate struct {
	URL      string
	Title    string
	Date     string
	Location string
}

// ResultSet is the ordered output of one search call.
// Partial is set when a timeout cut the pipeline short; in that case
// Events contains only fully extracted entries.
type ResultSet struct {
	Events  []Event `json:"events"`
	Partial bool    `json:"partial"`
}
