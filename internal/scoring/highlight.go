// Package scoring - highlight.go annotates event text with
// intent-relevant phrase markers.
package scoring

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/jonathan/event-scout/internal/llm"
	"github.com/jonathan/event-scout/internal/prompts"
)

// highlightCache avoids repeated model calls for the same text+intent
// pair within a process.
var (
	highlightCache   = make(map[string]string)
	highlightCacheMu sync.RWMutex
)

// Highlight wraps intent-relevant phrases of text in <mark> tags using
// the LLM. Failures are non-fatal: the original text is returned and
// cached so the same failure is not retried.
func Highlight(ctx context.Context, client llm.Client, text, intent string) string {
	if text == "" || intent == "" || client == nil {
		return text
	}

	key := cacheKey(text, intent)

	highlightCacheMu.RLock()
	cached, ok := highlightCache[key]
	highlightCacheMu.RUnlock()
	if ok {
		return cached
	}

	template := prompts.MustGet("scoring.json", "highlight-entities")
	prompt := prompts.Format(template, map[string]string{
		"Intent":    intent,
		"EventText": text,
	})

	annotated, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil || !strings.Contains(annotated, "<mark") {
		annotated = text
	}
	annotated = strings.TrimSpace(annotated)

	highlightCacheMu.Lock()
	highlightCache[key] = annotated
	highlightCacheMu.Unlock()

	return annotated
}

// ClearHighlightCache resets the cache. Useful for testing.
func ClearHighlightCache() {
	highlightCacheMu.Lock()
	highlightCache = make(map[string]string)
	highlightCacheMu.Unlock()
}

func cacheKey(text, intent string) string {
	sum := sha256.Sum256([]byte(text + "\x00" + intent))
	return hex.EncodeToString(sum[:])
}
