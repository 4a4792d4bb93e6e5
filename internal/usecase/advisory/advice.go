package advisory

import (
	"context"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

// QuickTip produces one short urgent tip for the farmer's crops under
// the current weather.
func (f *Facade) QuickTip(ctx context.Context, crops []domain.UserCrop, weatherCondition string) (string, error) {
	req := domain.NewUserTextRequest("", quickTipPrompt(crops, weatherCondition))
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return "", f.userError(err)
	}
	return result.Text, nil
}

// PersonalizedAdvice produces rank-appropriate advice for the farmer's
// current crops.
func (f *Facade) PersonalizedAdvice(ctx context.Context, crops []domain.UserCrop) (string, error) {
	req := domain.NewUserTextRequest("", personalizedAdvicePrompt(crops, f.opts.UserRank))
	req.Capability = domain.CapabilityVision // routes to the stronger model
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return "", f.userError(err)
	}
	return result.Text, nil
}

// YieldInputs describes the field for a yield prediction.
type YieldInputs struct {
	Crop            string
	AEZ             string
	SoilStatus      string
	FarmingPractice string
	WaterManagement string
	AdditionalNotes string
}

// YieldPrediction estimates the harvest for a crop in an agro-
// ecological zone, with grounding citations.
func (f *Facade) YieldPrediction(ctx context.Context, in YieldInputs) (domain.GroundedReport, error) {
	req := domain.NewUserTextRequest("", yieldPredictionPrompt(in))
	req.Capability = domain.CapabilityVision // routes to the stronger model
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.GroundedReport{}, f.userError(err)
	}
	return domain.GroundedReport{Text: result.Text, Citations: result.Citations}, nil
}

// SoilInputs carries the lab values for a soil health audit.
type SoilInputs struct {
	PH            float64
	OrganicCarbon float64
	Nitrogen      float64
	Phosphorus    float64
	Potassium     float64
}

// SoilHealthAudit interprets soil lab values against SRDI critical
// limits.
func (f *Facade) SoilHealthAudit(ctx context.Context, in SoilInputs) (string, error) {
	req := domain.NewUserTextRequest("", soilAuditPrompt(in))
	req.Capability = domain.CapabilityVision // routes to the stronger model
	req.Tools = domain.Tools{WebSearch: true}

	result, err := f.generate(ctx, req)
	if err != nil {
		return "", f.userError(err)
	}
	return result.Text, nil
}
