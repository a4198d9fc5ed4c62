package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	schema := ExtractionSchema{
		Name:        "Demo",
		Description: "You extract demo facts.",
		Fields: []SchemaField{
			{Name: "title", Type: "string", Description: "The title", Required: true},
			{Name: "tags", Type: "[]string"},
		},
	}

	prompt := BuildExtractionPrompt(schema, "input body")

	assert.Contains(t, prompt, "You extract demo facts.")
	assert.Contains(t, prompt, `"title": string (required) // The title`)
	assert.Contains(t, prompt, `"tags": []string`)
	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.Contains(t, prompt, "input body")
}

func TestBuildExtractionPrompt_DefaultsTypeToString(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Task.",
		Fields:      []SchemaField{{Name: "only"}},
	}

	prompt := BuildExtractionPrompt(schema, "x")
	assert.Contains(t, prompt, `"only": string`)
}
