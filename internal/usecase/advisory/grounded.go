package advisory

import (
	"context"

	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/extract"
)

// LiveWeather fetches grounded real-time weather for coordinates in
// Bangladesh. The answer is requested as JSON but grounding tools can
// wrap it in prose, so the tolerant extractor does the parsing.
func (f *Facade) LiveWeather(ctx context.Context, lat, lng float64) (domain.WeatherReport, error) {
	req := domain.NewUserTextRequest("", weatherPrompt(lat, lng))
	req.OutputMode = domain.OutputModeJSON
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.WeatherReport{}, f.userError(err)
	}

	return extract.JSON(result.Text, domain.WeatherReport{}), nil
}

// MarketPrices fetches today's commodity prices for Dhaka markets.
// An unparseable answer yields an empty list, never an error.
func (f *Facade) MarketPrices(ctx context.Context) ([]domain.MarketPrice, error) {
	req := domain.NewUserTextRequest("", marketPricesPrompt)
	req.OutputMode = domain.OutputModeJSON
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return nil, f.userError(err)
	}

	return extract.JSON(result.Text, []domain.MarketPrice{}), nil
}

// GroundedAdvisoryReport produces the official agriculture impact
// report for a named location, citing BAMIS and BMD sources.
func (f *Facade) GroundedAdvisoryReport(ctx context.Context, location string) (domain.GroundedReport, error) {
	req := domain.NewUserTextRequest("", groundedReportPrompt(location))
	req.Capability = domain.CapabilityVision // routes to the stronger model
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.GroundedReport{}, f.userError(err)
	}

	return domain.GroundedReport{Text: result.Text, Citations: result.Citations}, nil
}

// SearchAgriculturalInfo answers a free-form agricultural query with
// web grounding.
func (f *Facade) SearchAgriculturalInfo(ctx context.Context, query string) (domain.GroundedReport, error) {
	req := domain.NewUserTextRequest("", query)
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.GroundedReport{}, f.userError(err)
	}

	return domain.GroundedReport{Text: result.Text, Citations: result.Citations}, nil
}

// ChatContext carries the farmer's situation into the chat persona.
type ChatContext struct {
	UserCrops []domain.UserCrop
	Location  string // "upazila, district" when known
}

// Chat continues a conversation. History holds the prior turns in
// order; the new message is appended as the latest user turn.
func (f *Facade) Chat(ctx context.Context, history []domain.Turn, message string, chatCtx ChatContext) (domain.GroundedReport, error) {
	turns := make([]domain.Turn, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, domain.Turn{
		Role:  domain.RoleUser,
		Parts: []domain.Part{domain.TextPart{Text: message}},
	})

	req := domain.GenerationRequest{
		SystemInstruction: chatSystemInstruction(f.opts.UserRank, chatCtx.UserCrops, chatCtx.Location),
		Capability:        domain.CapabilityVision, // routes to the stronger model
		Tools:             domain.Tools{WebSearch: true},
		Turns:             turns,
	}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.GroundedReport{}, f.userError(err)
	}

	return domain.GroundedReport{Text: result.Text, Citations: result.Citations}, nil
}
