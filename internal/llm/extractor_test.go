package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Test",
		Description: "Extract the thing.",
		Fields: []SchemaField{
			{Name: "title", Type: "\"string\"", Description: "the title", Required: true},
			{Name: "tags", Type: "[\"string\"]"},
		},
	}

	prompt := BuildExtractionPrompt(schema, "some page text")

	assert.Contains(t, prompt, "Extract the thing.")
	assert.Contains(t, prompt, `"title": "string" (required) // the title`)
	assert.Contains(t, prompt, `"tags": ["string"]`)
	assert.Contains(t, prompt, "some page text")
	assert.Contains(t, prompt, "Omit any person or organization whose name does not appear")
}

func TestEventDetailsSchema(t *testing.T) {
	schema := EventDetailsSchema()

	assert.Equal(t, "EventDetails", schema.Name)

	fieldNames := make([]string, 0, len(schema.Fields))
	var required []string
	for _, f := range schema.Fields {
		fieldNames = append(fieldNames, f.Name)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	assert.ElementsMatch(t, []string{"title", "date", "location", "description", "speakers", "sponsors"}, fieldNames)
	assert.Equal(t, []string{"title"}, required, "only title is required; everything else is best effort")
}

func TestProfileListSchema(t *testing.T) {
	schema := ProfileListSchema("speakers")

	assert.Contains(t, schema.Description, "speakers")
	assert.Len(t, schema.Fields, 1)
	assert.Equal(t, "profiles", schema.Fields[0].Name)
	assert.True(t, schema.Fields[0].Required)
}
