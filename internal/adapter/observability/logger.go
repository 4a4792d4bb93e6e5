// Package observability builds the shared logger from configuration.
package observability

import (
	"context"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/config"
)

// NewLogger builds the structured logger the provider clients, gateway
// and facade all share. A disabled config yields a no-op logger so
// callers never have to nil-check.
func NewLogger(cfg config.LoggingConfig) llmhttp.Logger {
	if !cfg.Enabled {
		return NopLogger{}
	}

	return llmhttp.NewDefaultLogger(parseLevel(cfg.Level), parseFormat(cfg.Format), cfg.RedactAPIKeys)
}

func parseLevel(level string) llmhttp.LogLevel {
	switch level {
	case "debug":
		return llmhttp.LogLevelDebug
	case "error":
		return llmhttp.LogLevelError
	default:
		return llmhttp.LogLevelInfo
	}
}

func parseFormat(format string) llmhttp.LogFormat {
	if format == "json" {
		return llmhttp.LogFormatJSON
	}
	return llmhttp.LogFormatHuman
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogRequest(ctx context.Context, req llmhttp.RequestLog)    {}
func (NopLogger) LogResponse(ctx context.Context, resp llmhttp.ResponseLog) {}
func (NopLogger) LogError(ctx context.Context, err llmhttp.ErrorLog)        {}
func (NopLogger) LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
}
func (NopLogger) LogInfo(ctx context.Context, message string, fields map[string]interface{}) {}
