// Package extract - dom.go implements the structured-DOM extraction strategy.
package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/event-scout/internal/types"
)

// DOMStrategy reads event fields from reliable markup: schema.org
// JSON-LD blocks first, then OpenGraph metadata and visible elements.
// It is the highest-priority strategy because it needs no model call.
type DOMStrategy struct{}

// Name identifies the strategy in logs.
func (s *DOMStrategy) Name() string { return "dom" }

// CanHandle reports whether the page markup looks parseable.
func (s *DOMStrategy) CanHandle(page *Page) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return false
	}
	if doc.Find(`script[type="application/ld+json"]`).Length() > 0 {
		return true
	}
	return doc.Find("h1").Length() > 0 || doc.Find(`meta[property="og:title"]`).Length() > 0
}

// Extract pulls structured fields out of the page markup. Speakers and
// sponsors are only populated when the markup exposes them; prose-only
// pages are left for the LLM fallback strategy.
func (s *DOMStrategy) Extract(_ context.Context, page *Page) (*types.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, &SkipError{URL: page.URL, Reason: "unparseable HTML", Cause: err}
	}

	event := &types.Event{URL: page.URL}

	// JSON-LD is the most reliable source when present.
	if ld := findJSONLDEvent(doc); ld != nil {
		applyJSONLD(event, ld)
	}

	// Fill remaining fields from metadata and visible markup.
	if event.Title == "" {
		event.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if event.Title == "" {
		event.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if event.Description == "" {
		event.Description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	if event.Date == "" {
		timeEl := doc.Find("time").First()
		event.Date = strings.TrimSpace(timeEl.AttrOr("datetime", ""))
		if event.Date == "" {
			event.Date = strings.TrimSpace(timeEl.Text())
		}
	}
	if event.Location == "" {
		event.Location = strings.TrimSpace(doc.Find("address").First().Text())
	}

	// Prefer the page's canonical URL as the dedup key.
	if canonical := doc.Find(`link[rel="canonical"]`).AttrOr("href", ""); canonical != "" {
		event.URL = canonical
	} else if ogURL := doc.Find(`meta[property="og:url"]`).AttrOr("content", ""); ogURL != "" {
		event.URL = ogURL
	}

	if !event.Complete() {
		return nil, &SkipError{URL: page.URL, Reason: "no title element in markup"}
	}

	event.PruneProfiles()
	return event, nil
}

// ldEvent mirrors the subset of a schema.org Event block we read.
// location/performer/organizer/sponsor vary between object and array
// forms in the wild, so they are decoded leniently.
type ldEvent struct {
	Type        string          `json:"@type"`
	Name        string          `json:"name"`
	StartDate   string          `json:"startDate"`
	Description string          `json:"description"`
	URL         string          `json:"url"`
	Location    json.RawMessage `json:"location"`
	Performer   json.RawMessage `json:"performer"`
	Organizer   json.RawMessage `json:"organizer"`
	Sponsor     json.RawMessage `json:"sponsor"`
}

func findJSONLDEvent(doc *goquery.Document) *ldEvent {
	var found *ldEvent
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" {
			return true
		}

		// Blocks may hold a single object or an array of them.
		var blocks []ldEvent
		var single ldEvent
		if err := json.Unmarshal([]byte(raw), &single); err == nil {
			blocks = append(blocks, single)
		} else if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
			return true
		}

		for i := range blocks {
			if strings.EqualFold(blocks[i].Type, "Event") ||
				strings.EqualFold(blocks[i].Type, "SocialEvent") ||
				strings.EqualFold(blocks[i].Type, "BusinessEvent") {
				found = &blocks[i]
				return false
			}
		}
		return true
	})
	return found
}

func applyJSONLD(event *types.Event, ld *ldEvent) {
	event.Title = strings.TrimSpace(ld.Name)
	event.Date = strings.TrimSpace(ld.StartDate)
	event.Description = strings.TrimSpace(ld.Description)
	if ld.URL != "" {
		event.URL = ld.URL
	}
	event.Location = decodeLDLocation(ld.Location)
	event.Speakers = append(decodeLDProfiles(ld.Performer), decodeLDProfiles(ld.Organizer)...)
	event.Sponsors = decodeLDProfiles(ld.Sponsor)
}

// ldEntity is a lenient schema.org Person/Organization shape.
type ldEntity struct {
	Name     string          `json:"name"`
	JobTitle string          `json:"jobTitle"`
	WorksFor json.RawMessage `json:"worksFor"`
	Image    string          `json:"image"`
	URL      string          `json:"url"`
}

func decodeLDProfiles(raw json.RawMessage) []types.Profile {
	if len(raw) == 0 {
		return nil
	}

	var entities []ldEntity
	var single ldEntity
	if err := json.Unmarshal(raw, &single); err == nil {
		entities = append(entities, single)
	} else if err := json.Unmarshal(raw, &entities); err != nil {
		return nil
	}

	var profiles []types.Profile
	for _, ent := range entities {
		p := types.Profile{
			Name:    strings.TrimSpace(ent.Name),
			Title:   strings.TrimSpace(ent.JobTitle),
			Image:   ent.Image,
			Website: ent.URL,
		}
		var org ldEntity
		if len(ent.WorksFor) > 0 && json.Unmarshal(ent.WorksFor, &org) == nil {
			p.Company = strings.TrimSpace(org.Name)
		}
		if p.Valid() {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

func decodeLDLocation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}

	var place struct {
		Name    string          `json:"name"`
		Address json.RawMessage `json:"address"`
	}
	if err := json.Unmarshal(raw, &place); err != nil {
		return ""
	}
	if place.Name != "" {
		return strings.TrimSpace(place.Name)
	}

	var addr string
	if err := json.Unmarshal(place.Address, &addr); err == nil {
		return strings.TrimSpace(addr)
	}
	var addrObj struct {
		Locality string `json:"addressLocality"`
		Region   string `json:"addressRegion"`
	}
	if err := json.Unmarshal(place.Address, &addrObj); err == nil {
		parts := []string{}
		if addrObj.Locality != "" {
			parts = append(parts, addrObj.Locality)
		}
		if addrObj.Region != "" {
			parts = append(parts, addrObj.Region)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
