package http

// Pricing calculates API costs based on token usage.
type Pricing interface {
	// GetCost calculates cost for a given model and token usage
	GetCost(provider, model string, tokensIn, tokensOut int) float64
}

// ModelPricing contains pricing information for a model.
type ModelPricing struct {
	InputPer1M  float64 // Cost per 1M input tokens in USD
	OutputPer1M float64 // Cost per 1M output tokens in USD
}

// DefaultPricing provides cost calculation based on provider pricing.
type DefaultPricing struct {
	prices map[string]map[string]ModelPricing
}

// NewDefaultPricing creates a pricing calculator with current rates.
func NewDefaultPricing() *DefaultPricing {
	return &DefaultPricing{
		prices: buildPricingTable(),
	}
}

// GetCost calculates the cost for a given request. Unknown providers
// and models cost zero rather than failing: cost tracking is advisory.
func (p *DefaultPricing) GetCost(provider, model string, tokensIn, tokensOut int) float64 {
	providerPrices, ok := p.prices[provider]
	if !ok {
		return 0.0
	}

	modelPrice, ok := providerPrices[model]
	if !ok {
		return 0.0
	}

	inputCost := float64(tokensIn) / 1_000_000.0 * modelPrice.InputPer1M
	outputCost := float64(tokensOut) / 1_000_000.0 * modelPrice.OutputPer1M

	return inputCost + outputCost
}

// buildPricingTable returns pricing data for the models the gateway
// routes to. Pricing as of: 2025-12-27
// Sources:
// - Gemini: https://ai.google.dev/gemini-api/docs/pricing
// - OpenRouter: https://openrouter.ai/models
func buildPricingTable() map[string]map[string]ModelPricing {
	return map[string]map[string]ModelPricing{
		"gemini": {
			// Gemini 3 family (December 2025)
			"gemini-3-pro-preview": {
				InputPer1M:  2.00,
				OutputPer1M: 12.00,
			},
			"gemini-3-flash-preview": {
				InputPer1M:  0.50,
				OutputPer1M: 3.00,
			},
			// Gemini 2.5 family
			"gemini-2.5-flash": {
				InputPer1M:  0.15,
				OutputPer1M: 0.60,
			},
			"gemini-2.5-flash-preview-tts": {
				InputPer1M:  0.50,
				OutputPer1M: 10.00,
			},
			"gemini-2.5-flash-image": {
				InputPer1M:  0.30,
				OutputPer1M: 30.00,
			},
			// Legacy Gemini 1.5 family
			"gemini-1.5-flash": {
				InputPer1M:  0.075,
				OutputPer1M: 0.30,
			},
		},
		"openrouter": {
			"meta-llama/llama-3.1-8b-instruct": {
				InputPer1M:  0.02,
				OutputPer1M: 0.03,
			},
			"mistralai/mistral-7b-instruct": {
				InputPer1M:  0.028,
				OutputPer1M: 0.054,
			},
			"google/gemini-flash-1.5": {
				InputPer1M:  0.075,
				OutputPer1M: 0.30,
			},
			"openai/gpt-4o-mini": {
				InputPer1M:  0.15,
				OutputPer1M: 0.60,
			},
		},
	}
}
