package openrouter

import (
	"fmt"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

// roleMap converts conversation roles to chat-completions roles. The
// primary provider says "model" where this wire format says "assistant".
var roleMap = map[domain.Role]string{
	domain.RoleUser:  "user",
	domain.RoleModel: "assistant",
}

// TranslateRequest converts the provider-agnostic request into the
// chat-completions wire shape. Model selection happens here: any image
// part anywhere in the conversation routes to visionModel, because
// text-only models reject image blocks outright rather than degrading.
func TranslateRequest(req domain.GenerationRequest, textModel, visionModel string) ChatCompletionRequest {
	model := textModel
	if req.Capability == domain.CapabilityVision || req.HasImageParts() {
		model = visionModel
	}

	messages := make([]RequestMessage, 0, len(req.Turns)+1)

	if req.SystemInstruction != "" {
		messages = append(messages, RequestMessage{
			Role:    "system",
			Content: []ContentBlock{{Type: "text", Text: req.SystemInstruction}},
		})
	}

	for _, turn := range req.Turns {
		role, ok := roleMap[turn.Role]
		if !ok {
			role = "user"
		}

		blocks := make([]ContentBlock, 0, len(turn.Parts))
		for _, part := range turn.Parts {
			switch p := part.(type) {
			case domain.TextPart:
				blocks = append(blocks, ContentBlock{Type: "text", Text: p.Text})
			case domain.InlineDataPart:
				blocks = append(blocks, ContentBlock{
					Type: "image_url",
					ImageURL: &ImageURL{
						URL: fmt.Sprintf("data:%s;base64,%s", p.MIMEType, p.Data),
					},
				})
			}
		}
		messages = append(messages, RequestMessage{Role: role, Content: blocks})
	}

	out := ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	if req.OutputMode == domain.OutputModeJSON {
		out.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	return out
}

// TranslateResponse flattens the first choice into the normalized
// result. OpenRouter has no grounding, so citations are always empty.
func TranslateResponse(resp ChatCompletionResponse) domain.GenerationResult {
	result := domain.GenerationResult{
		Provider:  "openrouter",
		TokensIn:  resp.Usage.PromptTokens,
		TokensOut: resp.Usage.CompletionTokens,
	}

	if len(resp.Choices) == 0 {
		return result
	}

	result.RawCandidatePresent = true
	result.Text = resp.Choices[0].Message.Content
	return result
}
