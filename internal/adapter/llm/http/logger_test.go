package http

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureLog(fn func()) string {
	var buf bytes.Buffer
	orig := log.Writer()
	origFlags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(orig)
		log.SetFlags(origFlags)
	}()
	fn()
	return buf.String()
}

func TestRedactAPIKey(t *testing.T) {
	l := NewDefaultLogger(LogLevelDebug, LogFormatHuman, true)

	assert.Equal(t, "[REDACTED-3456]", l.RedactAPIKey("sk-123456123456"))
	assert.Equal(t, "[REDACTED]", l.RedactAPIKey("abc"))
	assert.Equal(t, "[REDACTED]", l.RedactAPIKey(""))
}

func TestRedactAPIKeyDisabled(t *testing.T) {
	l := NewDefaultLogger(LogLevelDebug, LogFormatHuman, false)
	assert.Equal(t, "sk-123456", l.RedactAPIKey("sk-123456"))

	l.SetRedaction(true)
	assert.Equal(t, "[REDACTED-3456]", l.RedactAPIKey("sk-123456"))
}

func TestLogRequestRedactsKey(t *testing.T) {
	l := NewDefaultLogger(LogLevelDebug, LogFormatHuman, true)

	out := captureLog(func() {
		l.LogRequest(context.Background(), RequestLog{
			Provider:        "gemini",
			Model:           "gemini-3-flash-preview",
			Capability:      "text",
			Timestamp:       time.Now(),
			PromptChars:     120,
			EstimatedTokens: 30,
			APIKey:          "AIzaSyFakeKey9876",
		})
	})

	assert.Contains(t, out, "[REDACTED-9876]")
	assert.NotContains(t, out, "AIzaSyFakeKey9876")
	assert.Contains(t, out, "prompt=120 chars, ~30 tokens")
}

func TestLogRequestJSONIncludesTokenEstimate(t *testing.T) {
	l := NewDefaultLogger(LogLevelDebug, LogFormatJSON, true)

	out := captureLog(func() {
		l.LogRequest(context.Background(), RequestLog{
			Provider:        "gemini",
			Model:           "gemini-3-flash-preview",
			Capability:      "text",
			Timestamp:       time.Now(),
			PromptChars:     120,
			EstimatedTokens: 30,
			APIKey:          "AIzaSyFakeKey9876",
		})
	})

	assert.Contains(t, out, `"prompt_chars":120`)
	assert.Contains(t, out, `"estimated_tokens":30`)
}

func TestLogLevelFiltersDebug(t *testing.T) {
	l := NewDefaultLogger(LogLevelInfo, LogFormatHuman, true)

	out := captureLog(func() {
		l.LogRequest(context.Background(), RequestLog{Provider: "gemini"})
	})

	assert.Empty(t, out, "debug-level request logs suppressed at info level")
}

func TestLogResponseHuman(t *testing.T) {
	l := NewDefaultLogger(LogLevelInfo, LogFormatHuman, true)

	out := captureLog(func() {
		l.LogResponse(context.Background(), ResponseLog{
			Provider:   "openrouter",
			Model:      "google/gemini-flash-1.5",
			Capability: "vision",
			Duration:   1200 * time.Millisecond,
			TokensIn:   100,
			TokensOut:  40,
			FellBack:   true,
		})
	})

	assert.Contains(t, out, "openrouter/google/gemini-flash-1.5")
	assert.Contains(t, out, "[fallback]")
}

func TestLogErrorRedactsURLSecrets(t *testing.T) {
	l := NewDefaultLogger(LogLevelError, LogFormatHuman, true)

	out := captureLog(func() {
		l.LogError(context.Background(), ErrorLog{
			Provider:   "gemini",
			Model:      "gemini-3-flash-preview",
			Capability: "text",
			Error:      NewServerError("gemini", "POST https://example.com/v1?key=SECRETKEY failed"),
			ErrorType:  ErrTypeServerError,
			StatusCode: 500,
			Retryable:  true,
		})
	})

	assert.NotContains(t, out, "SECRETKEY")
	assert.Contains(t, out, "[REDACTED]")
}

func TestLogInfoAndWarning(t *testing.T) {
	l := NewDefaultLogger(LogLevelInfo, LogFormatHuman, true)

	out := captureLog(func() {
		l.LogInfo(context.Background(), "provider initialized", map[string]interface{}{"provider": "gemini"})
	})
	assert.Contains(t, out, "[INFO] provider initialized")

	out = captureLog(func() {
		l.LogWarning(context.Background(), "falling back", nil)
	})
	assert.Contains(t, out, "[WARN] falling back")
}

func TestLogInfoJSONFormat(t *testing.T) {
	l := NewDefaultLogger(LogLevelInfo, LogFormatJSON, true)

	out := captureLog(func() {
		l.LogInfo(context.Background(), "started", map[string]interface{}{"count": 3})
	})

	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"message":"started"`)
	assert.Contains(t, out, `"count":3`)
}
