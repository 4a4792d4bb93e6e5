// Package store bridges the generation pipeline to the usage ledger.
package store

import (
	"context"
	"errors"
	"time"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/store"
)

// Generator mirrors the gateway's generation signature.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// Recorder wraps a Generator and appends one ledger row per call.
// Ledger failures never fail the generation; the answer matters more
// than the bookkeeping.
type Recorder struct {
	inner   Generator
	ledger  store.Store
	pricing llmhttp.Pricing
	logger  llmhttp.Logger
	primary string // name of the primary provider, to detect fallbacks
}

// NewRecorder wraps inner so every call lands in the ledger.
func NewRecorder(inner Generator, ledger store.Store, primaryProvider string) *Recorder {
	return &Recorder{
		inner:   inner,
		ledger:  ledger,
		primary: primaryProvider,
	}
}

// SetPricing enables cost calculation on recorded rows.
func (r *Recorder) SetPricing(pricing llmhttp.Pricing) {
	r.pricing = pricing
}

// SetLogger sets the logger for ledger write failures.
func (r *Recorder) SetLogger(logger llmhttp.Logger) {
	r.logger = logger
}

// Generate delegates to the wrapped generator and records the outcome.
func (r *Recorder) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	start := time.Now()

	result, err := r.inner.Generate(ctx, req)

	rec := store.UsageRecord{
		Timestamp:  start,
		Model:      req.Model,
		Capability: req.Capability.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	if err != nil {
		rec.Provider = r.primary
		var httpErr *llmhttp.Error
		if errors.As(err, &httpErr) {
			rec.Provider = httpErr.Provider
			rec.ErrorType = httpErr.Type.String()
		} else {
			rec.ErrorType = "internal"
		}
	} else {
		rec.Provider = result.Provider
		rec.TokensIn = result.TokensIn
		rec.TokensOut = result.TokensOut
		rec.FellBack = result.Provider != "" && result.Provider != r.primary
		if r.pricing != nil {
			rec.Cost = r.pricing.GetCost(result.Provider, req.Model, result.TokensIn, result.TokensOut)
		}
	}

	if writeErr := r.ledger.RecordUsage(ctx, rec); writeErr != nil && r.logger != nil {
		r.logger.LogWarning(ctx, "usage ledger write failed", map[string]interface{}{
			"error": writeErr.Error(),
		})
	}

	return result, err
}
