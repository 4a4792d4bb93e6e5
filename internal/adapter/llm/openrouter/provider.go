package openrouter

import (
	"context"
	"fmt"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

const providerName = "openrouter"

// Client abstracts the OpenRouter HTTP client behaviour we need.
type Client interface {
	Complete(ctx context.Context, req ChatCompletionRequest, capability domain.Capability) (domain.GenerationResult, error)
}

// Models routes text and vision traffic to their fallback models.
type Models struct {
	Text   string
	Vision string
}

// Provider implements the gateway Provider port for OpenRouter. It only
// serves text and vision; speech, image and video requests are refused
// so the gateway surfaces the primary provider's error instead of a
// silently wrong answer.
type Provider struct {
	models Models
	client Client
}

// NewProvider constructs a Provider with the supplied model routing.
func NewProvider(models Models, client Client) *Provider {
	return &Provider{
		models: models,
		client: client,
	}
}

// Name returns the provider identifier used in results and metrics.
func (p *Provider) Name() string {
	return providerName
}

// Supports reports whether this provider can serve the capability.
func (p *Provider) Supports(c domain.Capability) bool {
	switch c {
	case domain.CapabilityText, domain.CapabilityVision:
		return true
	default:
		return false
	}
}

// Generate translates the request to the chat-completions shape and
// sends it. Unsupported capabilities fail without touching the network.
func (p *Provider) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if p.client == nil {
		return domain.GenerationResult{}, fmt.Errorf("openrouter client missing")
	}

	if !p.Supports(req.Capability) {
		return domain.GenerationResult{}, llmhttp.NewUnsupportedCapabilityError(
			providerName,
			fmt.Sprintf("capability %s is not available on the fallback provider", req.Capability),
		)
	}

	wireReq := TranslateRequest(req, p.models.Text, p.models.Vision)
	if wireReq.Model == "" {
		return domain.GenerationResult{}, fmt.Errorf("openrouter: no model configured for capability %s", req.Capability)
	}

	return p.client.Complete(ctx, wireReq, req.Capability)
}
