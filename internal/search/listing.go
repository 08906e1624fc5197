// Package search - listing.go scrapes link+snippet pairs from the
// rendered results feed.
package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/event-scout/internal/types"
)

// listingLinkSelectors identify event cards in the results feed, tried
// in order. The first selector matching anything wins.
var listingLinkSelectors = []string{
	"a.event-link.content-link",
	`a[data-testid="event-card"]`,
	`a[href^="/"][aria-label]`,
}

// ParseListing extracts candidates from a rendered listing page, in
// document order. Hrefs are resolved against baseURL; anchors without a
// usable href are ignored.
func ParseListing(html, baseURL string) []types.Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var anchors *goquery.Selection
	for _, selector := range listingLinkSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			anchors = sel
			break
		}
	}
	if anchors == nil {
		return nil
	}

	var candidates []types.Candidate
	anchors.Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || href == "/" {
			return
		}
		abs := absoluteURL(href, baseURL)
		if abs == "" {
			return
		}

		cand := types.Candidate{
			URL:   abs,
			Title: candidateTitle(sel),
		}

		// Snippet date/location live on the surrounding card when present.
		if card := sel.Closest("div"); card.Length() > 0 {
			cand.Date = firstText(card, "time, .event-time, .date")
			cand.Location = firstText(card, ".attribute, .event-location, .location")
		}

		candidates = append(candidates, cand)
	})

	return candidates
}

func candidateTitle(sel *goquery.Selection) string {
	if label, ok := sel.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		return strings.TrimSpace(label)
	}
	if heading := sel.Find("h3, h4, .title").First(); heading.Length() > 0 {
		return strings.TrimSpace(heading.Text())
	}
	return strings.TrimSpace(sel.Text())
}

func firstText(sel *goquery.Selection, selector string) string {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.Text())
}
