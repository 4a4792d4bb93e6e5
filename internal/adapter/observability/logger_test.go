package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/adapter/observability"
	"github.com/krishiai/krishi-gateway/internal/config"
)

func TestNewLoggerDisabled(t *testing.T) {
	logger := observability.NewLogger(config.LoggingConfig{Enabled: false})

	_, ok := logger.(observability.NopLogger)
	assert.True(t, ok, "disabled logging should yield the no-op logger")

	// Must be safe to call.
	logger.LogWarning(context.Background(), "ignored", nil)
	logger.LogInfo(context.Background(), "ignored", map[string]interface{}{"k": "v"})
}

func TestNewLoggerEnabled(t *testing.T) {
	logger := observability.NewLogger(config.LoggingConfig{
		Enabled:       true,
		Level:         "debug",
		Format:        "json",
		RedactAPIKeys: true,
	})

	def, ok := logger.(*llmhttp.DefaultLogger)
	assert.True(t, ok)
	assert.Equal(t, "[REDACTED-5678]", def.RedactAPIKey("sk-12345678"))
}

func TestNewLoggerDefaultsToInfoHuman(t *testing.T) {
	logger := observability.NewLogger(config.LoggingConfig{
		Enabled: true,
		Level:   "unknown",
		Format:  "unknown",
	})

	_, ok := logger.(*llmhttp.DefaultLogger)
	assert.True(t, ok)
}
