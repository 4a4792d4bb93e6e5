package gemini

import (
	"context"
	"fmt"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

const providerName = "gemini"

// Client abstracts the Gemini HTTP client behaviour we need.
type Client interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// Models routes each capability to its model ID.
type Models struct {
	Text   string
	Vision string
	Speech string
	Image  string
}

// Provider implements the gateway Provider port for Gemini.
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
// Gemini serves everything the gateway routes.
func (p *Provider) Supports(c domain.Capability) bool {
	switch c {
	case domain.CapabilityText, domain.CapabilityVision, domain.CapabilitySpeech,
		domain.CapabilityImage, domain.CapabilityVideo:
		return true
	default:
		return false
	}
}

// Generate resolves the model for the request's capability and delegates
// to the HTTP client. An explicit req.Model wins over capability routing.
func (p *Provider) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if p.client == nil {
		return domain.GenerationResult{}, fmt.Errorf("gemini client missing")
	}

	if req.Model == "" {
		req.Model = p.modelFor(req)
	}
	if req.Model == "" {
		return domain.GenerationResult{}, fmt.Errorf("gemini: no model configured for capability %s", req.Capability)
	}

	return p.client.Generate(ctx, req)
}

func (p *Provider) modelFor(req domain.GenerationRequest) string {
	switch req.Capability {
	case domain.CapabilitySpeech:
		return p.models.Speech
	case domain.CapabilityImage:
		return p.models.Image
	case domain.CapabilityVision:
		return p.models.Vision
	default:
		// Image parts force the vision model even for text requests.
		if req.HasImageParts() {
			return p.models.Vision
		}
		return p.models.Text
	}
}
