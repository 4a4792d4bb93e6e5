// Package extract pulls structured data out of free-form model output.
//
// Model text is adversarial: it may wrap JSON in prose or markdown,
// truncate mid-structure, or ignore formatting instructions entirely.
// Everything here is best-effort. Extraction degrades to a
// caller-supplied default instead of failing, and none of these
// functions ever return an error.
package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"sync"
)

var (
	// Outermost {...} or [...] span, greedy. Not a real parser: the
	// span is handed to encoding/json which does the actual
	// validation. Compiled once, safe for concurrent use.
	jsonSpanRegex = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)

	// ```json fenced blocks, matched to the last closing fence so
	// nested code examples inside string values survive.
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\s\\S]*)```")
)

// Logger receives extraction diagnostics. Satisfied by llmhttp.Logger.
type Logger interface {
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

var (
	loggerMu sync.RWMutex
	logger   Logger
)

// SetLogger routes extraction diagnostics to the given logger. A nil
// logger silences them.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

func warn(message string, fields map[string]interface{}) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l != nil {
		l.LogWarning(context.Background(), message, fields)
	}
}

// JSON finds the first JSON-looking span in text and unmarshals it into
// T. On any failure (no span, malformed JSON, type mismatch) it returns
// fallback and logs a diagnostic. It never panics or errors.
func JSON[T any](text string, fallback T) T {
	if text == "" {
		return fallback
	}

	candidate := text
	if m := fencedBlockRegex.FindStringSubmatch(text); len(m) > 1 {
		candidate = m[1]
	}

	span := jsonSpanRegex.FindString(candidate)
	if span == "" {
		return fallback
	}

	var out T
	if err := json.Unmarshal([]byte(span), &out); err != nil {
		warn("extract: JSON parse failed, using fallback", map[string]interface{}{
			"error": err.Error(),
			"head":  head(text, 80),
		})
		return fallback
	}
	return out
}

func head(s string, n int) string {
	if len(s) <= n {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[:n]) + "..."
}
