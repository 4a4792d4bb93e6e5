package advisory

import (
	"context"

	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/extract"
)

// DiagnoseOptions refines what the vision diagnosis should look at.
type DiagnoseOptions struct {
	Focus      string
	CropFamily string
	Query      string
	UserCrops  []domain.UserCrop
}

// DiagnoseCropImage runs a vision diagnosis on a base64-encoded crop
// photo. The structured fields are parsed out of the prose answer by
// their labels; a response without labels still yields a usable result
// with the full text and zero confidence.
func (f *Facade) DiagnoseCropImage(ctx context.Context, imageBase64, mimeType string, opts DiagnoseOptions) (domain.CropDiagnosis, error) {
	req := domain.GenerationRequest{
		SystemInstruction: diagnosisSystemInstruction,
		Capability:        domain.CapabilityVision,
		Tools:             domain.Tools{WebSearch: true},
		Turns: []domain.Turn{
			{
				Role: domain.RoleUser,
				Parts: []domain.Part{
					domain.InlineDataPart{MIMEType: mimeType, Data: imageBase64},
					domain.TextPart{Text: diagnosisPrompt(opts, f.opts.UserRank)},
				},
			},
		},
	}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.CropDiagnosis{}, f.userError(err)
	}

	return domain.CropDiagnosis{
		Diagnosis:  extract.TaggedField(result.Text, "DIAGNOSIS"),
		Category:   extract.Category(result.Text),
		Confidence: extract.Confidence(result.Text),
		Management: extract.TaggedBlock(result.Text, "MANAGEMENT PROTOCOL"),
		Source:     extract.TaggedField(result.Text, "SOURCE"),
		FullText:   result.Text,
		Citations:  result.Citations,
	}, nil
}

// IdentifyPlantSpecimen identifies a plant from a photo, returning the
// prose identification with its grounding citations.
func (f *Facade) IdentifyPlantSpecimen(ctx context.Context, imageBase64, mimeType string) (domain.GroundedReport, error) {
	req := domain.GenerationRequest{
		Capability: domain.CapabilityVision,
		Tools:      domain.Tools{WebSearch: true},
		Turns: []domain.Turn{
			{
				Role: domain.RoleUser,
				Parts: []domain.Part{
					domain.InlineDataPart{MIMEType: mimeType, Data: imageBase64},
					domain.TextPart{Text: identifyPrompt},
				},
			},
		},
	}

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.GroundedReport{}, f.userError(err)
	}

	return domain.GroundedReport{Text: result.Text, Citations: result.Citations}, nil
}
