// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "EventDetails", "ProfileList")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "[{...}]"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Omit any person or organization whose name does not appear in the text.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// EventDetailsSchema returns the extraction schema for an event detail page.
// Used as a fallback when the page markup does not expose structured fields.
func EventDetailsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "EventDetails",
		Description: `You are an expert event page parser. COPY TEXT VERBATIM - do not paraphrase or reword.
Your task is to extract structured event information from the rendered text of an event page.
Goal: Extract the event title, date, location, description, and the people and companies involved.
EXCLUDE: Registration forms, cookie notices, navigation text, footer boilerplate.`,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "The event title exactly as written",
				Required:    true,
			},
			{
				Name:        "date",
				Type:        "\"string\"",
				Description: "Event date/time in the page's native format",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "City, venue, or 'Online'",
				Required:    false,
			},
			{
				Name:        "description",
				Type:        "\"string\"",
				Description: "The event description, verbatim",
				Required:    false,
			},
			{
				Name:        "speakers",
				Type:        "[{\"name\": \"string\", \"title\": \"string\", \"company\": \"string\", \"bio\": \"string\", \"image\": \"string\", \"website\": \"string\"}]",
				Description: "Speakers and hosts named on the page",
				Required:    false,
			},
			{
				Name:        "sponsors",
				Type:        "[{\"name\": \"string\", \"title\": \"string\", \"company\": \"string\", \"bio\": \"string\", \"image\": \"string\", \"website\": \"string\"}]",
				Description: "Sponsoring companies named on the page",
				Required:    false,
			},
		},
	}
}

// ProfileListSchema returns the extraction schema for unstructured
// speaker/sponsor prose (bios, host blurbs) on an event page.
func ProfileListSchema(role string) ExtractionSchema {
	return ExtractionSchema{
		Name: "ProfileList",
		Description: fmt.Sprintf(`You are an expert at reading event pages. Your task is to extract the %s mentioned in the text below.
For each person or company, capture exactly what the text states. Never invent names, titles, or companies.`, role),
		Fields: []SchemaField{
			{
				Name:        "profiles",
				Type:        "[{\"name\": \"string\", \"title\": \"string\", \"company\": \"string\", \"bio\": \"string\", \"image\": \"string\", \"website\": \"string\"}]",
				Description: fmt.Sprintf("All %s found; leave unknown fields as empty strings", role),
				Required:    true,
			},
		},
	}
}
