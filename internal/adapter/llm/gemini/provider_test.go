package gemini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiai/krishi-gateway/internal/adapter/llm/gemini"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

type fakeClient struct {
	lastReq domain.GenerationRequest
	result  domain.GenerationResult
	err     error
}

func (f *fakeClient) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func testModels() gemini.Models {
	return gemini.Models{
		Text:   "gemini-3-flash-preview",
		Vision: "gemini-3-pro-preview",
		Speech: "gemini-2.5-flash-preview-tts",
		Image:  "gemini-2.5-flash-image",
	}
}

func TestProviderRoutesModelsByCapability(t *testing.T) {
	tests := []struct {
		name      string
		req       domain.GenerationRequest
		wantModel string
	}{
		{
			name:      "text request uses text model",
			req:       domain.NewUserTextRequest("", "hello"),
			wantModel: "gemini-3-flash-preview",
		},
		{
			name: "vision capability uses vision model",
			req: domain.GenerationRequest{
				Capability: domain.CapabilityVision,
				Turns:      []domain.Turn{{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "x"}}}},
			},
			wantModel: "gemini-3-pro-preview",
		},
		{
			name: "image parts force vision model",
			req: domain.GenerationRequest{
				Turns: []domain.Turn{{Role: domain.RoleUser, Parts: []domain.Part{
					domain.InlineDataPart{MIMEType: "image/jpeg", Data: "aW1n"},
				}}},
			},
			wantModel: "gemini-3-pro-preview",
		},
		{
			name: "speech capability uses tts model",
			req: domain.GenerationRequest{
				Capability: domain.CapabilitySpeech,
				Turns:      []domain.Turn{{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "x"}}}},
			},
			wantModel: "gemini-2.5-flash-preview-tts",
		},
		{
			name: "image capability uses image model",
			req: domain.GenerationRequest{
				Capability: domain.CapabilityImage,
				Turns:      []domain.Turn{{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "x"}}}},
			},
			wantModel: "gemini-2.5-flash-image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			provider := gemini.NewProvider(testModels(), client)

			_, err := provider.Generate(context.Background(), tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantModel, client.lastReq.Model)
		})
	}
}

func TestProviderExplicitModelWins(t *testing.T) {
	client := &fakeClient{}
	provider := gemini.NewProvider(testModels(), client)

	req := domain.NewUserTextRequest("gemini-custom", "hello")
	_, err := provider.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "gemini-custom", client.lastReq.Model)
}

func TestProviderMissingModelConfig(t *testing.T) {
	client := &fakeClient{}
	provider := gemini.NewProvider(gemini.Models{}, client)

	_, err := provider.Generate(context.Background(), domain.NewUserTextRequest("", "hello"))
	assert.Error(t, err)
}

func TestProviderMissingClient(t *testing.T) {
	provider := gemini.NewProvider(testModels(), nil)

	_, err := provider.Generate(context.Background(), domain.NewUserTextRequest("", "hello"))
	assert.Error(t, err)
}

func TestProviderSupportsEverything(t *testing.T) {
	provider := gemini.NewProvider(testModels(), &fakeClient{})

	for _, c := range []domain.Capability{
		domain.CapabilityText, domain.CapabilityVision, domain.CapabilitySpeech,
		domain.CapabilityImage, domain.CapabilityVideo,
	} {
		assert.True(t, provider.Supports(c), "capability %s", c)
	}
}

func TestProviderName(t *testing.T) {
	assert.Equal(t, "gemini", gemini.NewProvider(testModels(), &fakeClient{}).Name())
}
