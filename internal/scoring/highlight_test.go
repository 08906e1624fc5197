package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/event-scout/internal/llm"
)

func TestHighlight_AnnotatesText(t *testing.T) {
	ClearHighlightCache()

	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "Meet <mark>fintech founders</mark> over drinks.", nil
		},
	}

	got := Highlight(context.Background(), mockClient, "Meet fintech founders over drinks.", "fintech founders")
	assert.Equal(t, "Meet <mark>fintech founders</mark> over drinks.", got)
}

func TestHighlight_ReturnsOriginalOnError(t *testing.T) {
	ClearHighlightCache()

	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	original := "A founder dinner in SoMa."
	got := Highlight(context.Background(), mockClient, original, "founders")
	assert.Equal(t, original, got)
}

func TestHighlight_RejectsUnmarkedResponse(t *testing.T) {
	ClearHighlightCache()

	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "I cannot annotate this text.", nil
		},
	}

	original := "A founder dinner in SoMa."
	got := Highlight(context.Background(), mockClient, original, "founders")
	assert.Equal(t, original, got)
}

func TestHighlight_CachesResult(t *testing.T) {
	ClearHighlightCache()

	calls := 0
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			calls++
			return "<mark>AI</mark> meetup", nil
		},
	}

	for i := 0; i < 3; i++ {
		Highlight(context.Background(), mockClient, "AI meetup", "AI")
	}
	assert.Equal(t, 1, calls)
}

func TestHighlight_EmptyInputs(t *testing.T) {
	assert.Equal(t, "", Highlight(context.Background(), &MockLLMClient{}, "", "intent"))
	assert.Equal(t, "text", Highlight(context.Background(), &MockLLMClient{}, "text", ""))
	assert.Equal(t, "text", Highlight(context.Background(), nil, "text", "intent"))
}
