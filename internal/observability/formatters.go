// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/event-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of the normalized search request.
func (p *Printer) PrintRequest(req *types.SearchRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Intent:    %s\n", req.Intent))
	if req.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", req.Location))
	}
	if req.Category != "" {
		sb.WriteString(fmt.Sprintf("Category:  %s\n", req.Category))
	}
	if req.Calendar != "" {
		sb.WriteString(fmt.Sprintf("Calendar:  %s\n", req.Calendar))
	}
	sb.WriteString(fmt.Sprintf("Max:       %d\n", req.MaxResults))
	sb.WriteString(fmt.Sprintf("Timeout:   %ds", req.TimeoutSeconds))

	p.printBox("SEARCH REQUEST", sb.String())
}

// PrintCandidates outputs the candidates enumerated from the listing surface.
func (p *Printer) PrintCandidates(candidates []types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Enumerated %d candidates:\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %s\n", c.URL))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(candidates)-maxItemsToShow))
	}

	p.printBox("LISTING CANDIDATES", sb.String())
}

// PrintEvent outputs one extracted event with its people and score.
func (p *Printer) PrintEvent(event *types.Event) {
	if event == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:     %s\n", event.Title))
	if event.Date != "" {
		sb.WriteString(fmt.Sprintf("Date:      %s\n", event.Date))
	}
	if event.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", event.Location))
	}
	if event.RelevanceScore != nil {
		sb.WriteString(fmt.Sprintf("Score:     %.1f\n", *event.RelevanceScore))
	}

	if len(event.Speakers) > 0 {
		sb.WriteString("\nSpeakers:\n")
		count := min(len(event.Speakers), 3)
		for i := 0; i < count; i++ {
			s := event.Speakers[i]
			line := s.Name
			if s.Company != "" {
				line += " (" + s.Company + ")"
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", line))
		}
		if len(event.Speakers) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(event.Speakers)-3))
		}
	}
	if len(event.Sponsors) > 0 {
		sb.WriteString("\nSponsors:\n")
		count := min(len(event.Sponsors), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", event.Sponsors[i].Name))
		}
		if len(event.Sponsors) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(event.Sponsors)-3))
		}
	}

	p.printBox("EXTRACTED EVENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResultSet outputs the final ordered result set.
func (p *Printer) PrintResultSet(rs *types.ResultSet) {
	if rs == nil || len(rs.Events) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHING EVENTS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	header := fmt.Sprintf("Returning %d events", len(rs.Events))
	if rs.Partial {
		header += " (partial)"
	}
	sb.WriteString(header + ":\n\n")

	count := min(len(rs.Events), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := rs.Events[i]
		title := e.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		if e.RelevanceScore != nil {
			sb.WriteString(fmt.Sprintf("    Score: %.1f\n", *e.RelevanceScore))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(rs.Events) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more events", len(rs.Events)-maxItemsToShow))
	}

	p.printBox("RESULT SET", sb.String())
}
