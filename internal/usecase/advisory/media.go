package advisory

import (
	"context"
	"fmt"

	"github.com/krishiai/krishi-gateway/internal/audio"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

// GeneratedImage is a base64-encoded PNG plus its MIME type.
type GeneratedImage struct {
	MIMEType string
	Data     string // raw base64
}

// DataURI renders the image as a data URI for direct embedding.
func (g GeneratedImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", g.MIMEType, g.Data)
}

// GenerateFieldImage produces an illustration from a prompt. Image
// generation has no fallback provider; a primary failure is final.
func (f *Facade) GenerateFieldImage(ctx context.Context, prompt string) (GeneratedImage, error) {
	req := domain.NewUserTextRequest("", prompt)
	req.Capability = domain.CapabilityImage

	result, err := f.generate(ctx, req)
	if err != nil {
		return GeneratedImage{}, f.userError(err)
	}
	if result.InlineData == "" {
		return GeneratedImage{}, f.userError(fmt.Errorf("image generation returned no image data"))
	}

	mimeType := result.InlineMIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return GeneratedImage{MIMEType: mimeType, Data: result.InlineData}, nil
}

// SynthesizeSpeech converts advisory text to playable audio. A
// dedicated synthesis service is preferred; otherwise the primary
// provider's speech model serves. Either way the base64 PCM payload is
// decoded into a normalized float buffer.
func (f *Facade) SynthesizeSpeech(ctx context.Context, text string) (*audio.Buffer, error) {
	encoded, err := f.speechBase64(ctx, text)
	if err != nil {
		return nil, err
	}

	raw, err := audio.DecodeBase64(encoded)
	if err != nil {
		return nil, f.userError(fmt.Errorf("decode audio payload: %w", err))
	}

	buf, err := audio.DecodePCM16(raw, audio.DefaultSampleRate, audio.DefaultChannels)
	if err != nil {
		return nil, f.userError(fmt.Errorf("decode pcm audio: %w", err))
	}
	return buf, nil
}

func (f *Facade) speechBase64(ctx context.Context, text string) (string, error) {
	if f.speech != nil {
		encoded, err := f.speech.Synthesize(ctx, text)
		if err != nil {
			return "", f.userError(err)
		}
		return encoded, nil
	}

	req := domain.NewUserTextRequest("", text)
	req.Capability = domain.CapabilitySpeech

	result, err := f.generate(ctx, req)
	if err != nil {
		return "", f.userError(err)
	}
	if result.InlineData == "" {
		return "", f.userError(fmt.Errorf("speech synthesis returned no audio"))
	}
	return result.InlineData, nil
}
