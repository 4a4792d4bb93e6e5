package openrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

const (
	testTextModel   = "meta-llama/llama-3.1-8b-instruct"
	testVisionModel = "google/gemini-flash-1.5"
)

func TestTranslateRequestTextOnly(t *testing.T) {
	req := domain.GenerationRequest{
		SystemInstruction: "You are an agronomist.",
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "What is blight?"}}},
			{Role: domain.RoleModel, Parts: []domain.Part{domain.TextPart{Text: "A fungal disease."}}},
			{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "How do I treat it?"}}},
		},
	}

	wire := TranslateRequest(req, testTextModel, testVisionModel)

	assert.Equal(t, testTextModel, wire.Model, "no images means the text model")

	require.Len(t, wire.Messages, 4)
	assert.Equal(t, "system", wire.Messages[0].Role)
	assert.Equal(t, "You are an agronomist.", wire.Messages[0].Content[0].Text)
	assert.Equal(t, "user", wire.Messages[1].Role)
	assert.Equal(t, "assistant", wire.Messages[2].Role, "model role maps to assistant")
	assert.Equal(t, "user", wire.Messages[3].Role)

	assert.Nil(t, wire.ResponseFormat)
}

func TestTranslateRequestImagePartsSelectVisionModel(t *testing.T) {
	req := domain.GenerationRequest{
		Turns: []domain.Turn{
			{Role: domain.RoleUser, Parts: []domain.Part{
				domain.InlineDataPart{MIMEType: "image/jpeg", Data: "aW1hZ2U="},
				domain.TextPart{Text: "diagnose this leaf"},
			}},
		},
	}

	wire := TranslateRequest(req, testTextModel, testVisionModel)

	assert.Equal(t, testVisionModel, wire.Model)

	require.Len(t, wire.Messages, 1)
	blocks := wire.Messages[0].Content
	require.Len(t, blocks, 2)

	assert.Equal(t, "image_url", blocks[0].Type)
	require.NotNil(t, blocks[0].ImageURL)
	assert.Equal(t, "data:image/jpeg;base64,aW1hZ2U=", blocks[0].ImageURL.URL)

	assert.Equal(t, "text", blocks[1].Type)
	assert.Equal(t, "diagnose this leaf", blocks[1].Text)
}

func TestTranslateRequestVisionCapabilityWithoutImages(t *testing.T) {
	req := domain.NewUserTextRequest("", "describe the uploaded photo")
	req.Capability = domain.CapabilityVision

	wire := TranslateRequest(req, testTextModel, testVisionModel)

	assert.Equal(t, testVisionModel, wire.Model)
}

func TestTranslateRequestJSONMode(t *testing.T) {
	req := domain.NewUserTextRequest("", "give me json")
	req.OutputMode = domain.OutputModeJSON

	wire := TranslateRequest(req, testTextModel, testVisionModel)

	require.NotNil(t, wire.ResponseFormat)
	assert.Equal(t, "json_object", wire.ResponseFormat.Type)
}

func TestTranslateRequestNoSystemInstruction(t *testing.T) {
	req := domain.NewUserTextRequest("", "hello")

	wire := TranslateRequest(req, testTextModel, testVisionModel)

	require.Len(t, wire.Messages, 1)
	assert.Equal(t, "user", wire.Messages[0].Role)
}

func TestTranslateResponse(t *testing.T) {
	resp := ChatCompletionResponse{
		Choices: []Choice{
			{Message: ResponseMessage{Role: "assistant", Content: "Use a copper fungicide."}},
		},
		Usage: Usage{PromptTokens: 20, CompletionTokens: 8},
	}

	result := TranslateResponse(resp)

	assert.Equal(t, "Use a copper fungicide.", result.Text)
	assert.Equal(t, "openrouter", result.Provider)
	assert.True(t, result.RawCandidatePresent)
	assert.Equal(t, 20, result.TokensIn)
	assert.Equal(t, 8, result.TokensOut)
	assert.Empty(t, result.Citations, "fallback provider has no grounding")
}

func TestTranslateResponseNoChoices(t *testing.T) {
	result := TranslateResponse(ChatCompletionResponse{})

	assert.Empty(t, result.Text)
	assert.False(t, result.RawCandidatePresent)
}
