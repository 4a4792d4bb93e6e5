package gemini

import (
	"github.com/krishiai/krishi-gateway/internal/domain"
)

// translateRequest converts the provider-agnostic request into the
// generateContent wire shape.
func translateRequest(req domain.GenerationRequest, voice string) GenerateContentRequest {
	out := GenerateContentRequest{
		Contents: make([]Content, 0, len(req.Turns)),
	}

	for _, turn := range req.Turns {
		content := Content{
			Role:  string(turn.Role),
			Parts: make([]Part, 0, len(turn.Parts)),
		}
		for _, part := range turn.Parts {
			switch p := part.(type) {
			case domain.TextPart:
				content.Parts = append(content.Parts, Part{Text: p.Text})
			case domain.InlineDataPart:
				content.Parts = append(content.Parts, Part{
					InlineData: &InlineData{MIMEType: p.MIMEType, Data: p.Data},
				})
			}
		}
		out.Contents = append(out.Contents, content)
	}

	if req.SystemInstruction != "" {
		out.SystemInstruction = &Content{
			Parts: []Part{{Text: req.SystemInstruction}},
		}
	}

	if req.Tools.WebSearch {
		out.Tools = append(out.Tools, Tool{GoogleSearch: &GoogleSearch{}})
	}
	if req.Tools.MapsGrounding {
		out.Tools = append(out.Tools, Tool{GoogleMaps: &GoogleMaps{}})
	}

	cfg := &GenerationConfig{}
	configured := false

	// Grounding tools and forced-JSON output are mutually exclusive on
	// the API; tools win because the caller asked for live data.
	if req.OutputMode == domain.OutputModeJSON && len(out.Tools) == 0 {
		cfg.ResponseMIMEType = "application/json"
		configured = true
	}

	switch req.Capability {
	case domain.CapabilitySpeech:
		cfg.ResponseModalities = []string{"AUDIO"}
		selected := req.Voice
		if selected == "" {
			selected = voice
		}
		cfg.SpeechConfig = &SpeechConfig{
			VoiceConfig: VoiceConfig{
				PrebuiltVoiceConfig: PrebuiltVoiceConfig{VoiceName: selected},
			},
		}
		configured = true
	case domain.CapabilityImage:
		cfg.ResponseModalities = []string{"IMAGE"}
		if req.AspectRatio != "" {
			cfg.ImageConfig = &ImageConfig{AspectRatio: req.AspectRatio}
		}
		configured = true
	}

	if configured {
		out.GenerationConfig = cfg
	}

	out.SafetySettings = defaultSafetySettings()

	return out
}

func defaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
	}
}

// translateResponse flattens the first candidate into the normalized
// result shape. A missing candidate is not an error: the caller decides
// what an empty answer means.
func translateResponse(resp GenerateContentResponse) domain.GenerationResult {
	result := domain.GenerationResult{
		Provider:  "gemini",
		TokensIn:  resp.UsageMetadata.PromptTokenCount,
		TokensOut: resp.UsageMetadata.CandidatesTokenCount,
	}

	if len(resp.Candidates) == 0 {
		return result
	}

	candidate := resp.Candidates[0]
	result.RawCandidatePresent = true

	text := ""
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
		if part.InlineData != nil && result.InlineData == "" {
			result.InlineData = part.InlineData.Data
			result.InlineMIMEType = part.InlineData.MIMEType
		}
	}
	result.Text = text

	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			switch {
			case chunk.Web != nil:
				result.Citations = append(result.Citations, domain.Citation{
					Kind:  domain.CitationWeb,
					Title: chunk.Web.Title,
					URI:   chunk.Web.URI,
				})
			case chunk.Maps != nil:
				result.Citations = append(result.Citations, domain.Citation{
					Kind:  domain.CitationMaps,
					Title: chunk.Maps.Title,
					URI:   chunk.Maps.URI,
				})
			}
		}
	}

	return result
}
