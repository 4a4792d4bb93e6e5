// Package advisory is the capability facade: one function per
// user-facing generative feature, each building a single generation
// request and shaping the raw response into a typed result.
package advisory

import (
	"context"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

// Generator is the port the facade calls; in production it is the
// fallback gateway.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
}

// SpeechSynthesizer is the optional dedicated speech service. When nil,
// speech routes through the Generator with the speech capability.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Options tunes prompt personalization.
type Options struct {
	// Language for generated advisory text ("bn" or "en").
	Language string
	// UserRank personalizes prompt difficulty.
	UserRank string
}

// DefaultUserRank is the novice-farmer rank used when none is set.
const DefaultUserRank = "নবিশ কৃষক"

// Facade exposes the generative capabilities of the advisory app.
type Facade struct {
	generator Generator
	speech    SpeechSynthesizer
	opts      Options

	logger llmhttp.Logger
}

// NewFacade builds a Facade over the given generator.
func NewFacade(generator Generator, opts Options) *Facade {
	if opts.Language == "" {
		opts.Language = "bn"
	}
	if opts.UserRank == "" {
		opts.UserRank = DefaultUserRank
	}
	return &Facade{
		generator: generator,
		opts:      opts,
	}
}

// SetSpeechSynthesizer routes speech requests to a dedicated service.
func (f *Facade) SetSpeechSynthesizer(s SpeechSynthesizer) {
	f.speech = s
}

// SetLogger sets the logger.
func (f *Facade) SetLogger(logger llmhttp.Logger) {
	f.logger = logger
}

func (f *Facade) generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	result, err := f.generator.Generate(ctx, req)
	if err != nil {
		return domain.GenerationResult{}, err
	}
	return result, nil
}
