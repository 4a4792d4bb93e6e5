package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingKnownModels(t *testing.T) {
	p := NewDefaultPricing()

	// gemini-3-flash-preview: $0.50/1M in, $3.00/1M out
	cost := p.GetCost("gemini", "gemini-3-flash-preview", 1_000_000, 1_000_000)
	assert.InDelta(t, 3.50, cost, 1e-9)

	// llama fallback model: $0.02/1M in, $0.03/1M out
	cost = p.GetCost("openrouter", "meta-llama/llama-3.1-8b-instruct", 2_000_000, 1_000_000)
	assert.InDelta(t, 0.07, cost, 1e-9)
}

func TestPricingPartialTokens(t *testing.T) {
	p := NewDefaultPricing()

	cost := p.GetCost("gemini", "gemini-3-pro-preview", 500, 250)
	expected := 500.0/1_000_000.0*2.00 + 250.0/1_000_000.0*12.00
	assert.InDelta(t, expected, cost, 1e-9)
}

func TestPricingUnknownProviderIsFree(t *testing.T) {
	p := NewDefaultPricing()

	assert.Zero(t, p.GetCost("nonexistent", "some-model", 1000, 1000))
}

func TestPricingUnknownModelIsFree(t *testing.T) {
	p := NewDefaultPricing()

	assert.Zero(t, p.GetCost("gemini", "not-a-real-model", 1000, 1000))
}

func TestPricingZeroTokens(t *testing.T) {
	p := NewDefaultPricing()

	assert.Zero(t, p.GetCost("gemini", "gemini-3-flash-preview", 0, 0))
}
