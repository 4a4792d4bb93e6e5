// Package generate routes generation requests through a primary
// provider with automatic fallback to a secondary one.
package generate

import (
	"context"
	"fmt"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

// Provider is the port every generation backend implements.
type Provider interface {
	// Name identifies the provider in results, logs and metrics.
	Name() string

	// Supports reports whether the provider can serve the capability.
	Supports(c domain.Capability) bool

	// Generate executes one generation call.
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// Gateway executes requests against the primary provider and replays
// them on the fallback when the failure is one a different provider
// could plausibly absorb. Fatal errors (bad request, auth, content
// filter) propagate immediately; capabilities the fallback cannot serve
// propagate the primary's original error.
type Gateway struct {
	primary  Provider
	fallback Provider

	logger  llmhttp.Logger
	metrics llmhttp.Metrics
}

// NewGateway constructs a Gateway. fallback may be nil, in which case
// every primary failure is final.
func NewGateway(primary, fallback Provider) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
	}
}

// SetLogger sets the logger for fallback decisions.
func (g *Gateway) SetLogger(logger llmhttp.Logger) {
	g.logger = logger
}

// SetMetrics sets the metrics tracker for fallback counting.
func (g *Gateway) SetMetrics(metrics llmhttp.Metrics) {
	g.metrics = metrics
}

// Generate runs the request, falling back at most once.
func (g *Gateway) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if err := req.Validate(); err != nil {
		return domain.GenerationResult{}, err
	}
	if g.primary == nil {
		return domain.GenerationResult{}, fmt.Errorf("no primary provider configured")
	}

	result, primaryErr := g.primary.Generate(ctx, req)
	if primaryErr == nil {
		return result, nil
	}

	if !llmhttp.ShouldFallBack(primaryErr) {
		return domain.GenerationResult{}, primaryErr
	}

	if g.fallback == nil || !g.fallback.Supports(req.Capability) {
		// The fallback cannot serve this request; the primary's error
		// is the truthful one to surface.
		return domain.GenerationResult{}, primaryErr
	}

	// Context may already be dead after the primary's retries.
	if err := ctx.Err(); err != nil {
		return domain.GenerationResult{}, err
	}

	if g.logger != nil {
		g.logger.LogWarning(ctx, "primary provider failed, switching to fallback", map[string]interface{}{
			"primary":    g.primary.Name(),
			"fallback":   g.fallback.Name(),
			"capability": req.Capability.String(),
			"error":      llmhttp.RedactURLSecrets(primaryErr.Error()),
		})
	}
	if g.metrics != nil {
		g.metrics.RecordFallback(g.primary.Name(), g.fallback.Name())
	}

	result, fallbackErr := g.fallback.Generate(ctx, req)
	if fallbackErr != nil {
		return domain.GenerationResult{}, fmt.Errorf("both providers failed: primary: %v; fallback: %w", primaryErr, fallbackErr)
	}

	return result, nil
}
