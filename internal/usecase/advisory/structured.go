package advisory

import (
	"context"

	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/extract"
)

// CropSchedule generates a dated task list for a crop and season.
func (f *Facade) CropSchedule(ctx context.Context, crop, startDate, season string) ([]domain.TaskItem, error) {
	req := domain.NewUserTextRequest("", cropSchedulePrompt(crop, startDate, season))
	req.OutputMode = domain.OutputModeJSON

	result, err := f.generate(ctx, req)
	if err != nil {
		return nil, f.userError(err)
	}
	return extract.JSON(result.Text, []domain.TaskItem{}), nil
}

// Quiz generates multiple-choice questions on an agricultural topic.
func (f *Facade) Quiz(ctx context.Context, topic string) ([]domain.QuizQuestion, error) {
	req := domain.NewUserTextRequest("", quizPrompt(topic))
	req.OutputMode = domain.OutputModeJSON

	result, err := f.generate(ctx, req)
	if err != nil {
		return nil, f.userError(err)
	}
	return extract.JSON(result.Text, []domain.QuizQuestion{}), nil
}

// FlashCards generates a study deck on an agricultural topic.
func (f *Facade) FlashCards(ctx context.Context, topic string) ([]domain.FlashCard, error) {
	req := domain.NewUserTextRequest("", flashCardsPrompt(topic))
	req.OutputMode = domain.OutputModeJSON

	result, err := f.generate(ctx, req)
	if err != nil {
		return nil, f.userError(err)
	}
	return extract.JSON(result.Text, []domain.FlashCard{}), nil
}

// CropDiseaseInfo generates the structured disease and pest reference
// for a crop.
func (f *Facade) CropDiseaseInfo(ctx context.Context, crop string) (domain.CropDiseaseReport, error) {
	req := domain.NewUserTextRequest("", cropDiseasePrompt(crop))
	req.OutputMode = domain.OutputModeJSON

	result, err := f.generate(ctx, req)
	if err != nil {
		return domain.CropDiseaseReport{}, f.userError(err)
	}
	return extract.JSON(result.Text, domain.CropDiseaseReport{}), nil
}
