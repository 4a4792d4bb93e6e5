package advisory_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
)

type fakeGenerator struct {
	lastReq domain.GenerationRequest
	result  domain.GenerationResult
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func newFacade(gen *fakeGenerator) *advisory.Facade {
	return advisory.NewFacade(gen, advisory.Options{})
}

func TestDiagnoseCropImageExtractsTaggedFields(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		Text: `DIAGNOSIS: Late blight of potato
CATEGORY: Disease
CONFIDENCE: 87
MANAGEMENT PROTOCOL: Remove infected plants.
Spray mancozeb per BARC guideline.
SOURCE: BARC 2024

বিস্তারিত পরামর্শ এখানে।`,
		Citations: []domain.Citation{{Kind: domain.CitationWeb, URI: "https://cabi.org/x", Title: "CABI"}},
	}}
	facade := newFacade(gen)

	diag, err := facade.DiagnoseCropImage(context.Background(), "aW1n", "image/jpeg", advisory.DiagnoseOptions{
		CropFamily: "আলু",
	})

	require.NoError(t, err)
	assert.Equal(t, "Late blight of potato", diag.Diagnosis)
	assert.Equal(t, domain.CategoryDisease, diag.Category)
	assert.Equal(t, 87, diag.Confidence)
	assert.Contains(t, diag.Management, "Remove infected plants.")
	assert.Contains(t, diag.Management, "Spray mancozeb")
	assert.Equal(t, "BARC 2024", diag.Source)
	assert.NotEmpty(t, diag.FullText)
	require.Len(t, diag.Citations, 1)

	// Request shape: vision capability, search grounding, image part first
	assert.Equal(t, domain.CapabilityVision, gen.lastReq.Capability)
	assert.True(t, gen.lastReq.Tools.WebSearch)
	assert.NotEmpty(t, gen.lastReq.SystemInstruction)
	require.Len(t, gen.lastReq.Turns, 1)
	parts := gen.lastReq.Turns[0].Parts
	require.Len(t, parts, 2)
	img, ok := parts[0].(domain.InlineDataPart)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", img.MIMEType)
}

func TestDiagnoseCropImageUnlabelledResponse(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{Text: "গাছটি সুস্থ দেখাচ্ছে।"}}
	facade := newFacade(gen)

	diag, err := facade.DiagnoseCropImage(context.Background(), "aW1n", "image/jpeg", advisory.DiagnoseOptions{})

	require.NoError(t, err)
	assert.Empty(t, diag.Diagnosis)
	assert.Equal(t, domain.CategoryOther, diag.Category)
	assert.Zero(t, diag.Confidence)
	assert.Equal(t, "গাছটি সুস্থ দেখাচ্ছে।", diag.FullText)
}

func TestLiveWeatherParsesWrappedJSON(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		Text: "আজকের আবহাওয়া: {\"upazila\":\"সাভার\",\"district\":\"ঢাকা\",\"temp\":31.5,\"condition\":\"রৌদ্রোজ্জ্বল\",\"humidity\":70,\"forecast\":[{\"date\":\"2026-09-02\",\"condition\":\"বৃষ্টি\",\"maxTemp\":30,\"minTemp\":26,\"rainProbability\":80}]}",
	}}
	facade := newFacade(gen)

	report, err := facade.LiveWeather(context.Background(), 23.8103, 90.4125)

	require.NoError(t, err)
	assert.Equal(t, "সাভার", report.Upazila)
	assert.Equal(t, 31.5, report.Temp)
	require.Len(t, report.Forecast, 1)
	assert.Equal(t, 80.0, report.Forecast[0].RainProbability)

	assert.Equal(t, domain.OutputModeJSON, gen.lastReq.OutputMode)
	assert.True(t, gen.lastReq.Tools.WebSearch)
}

func TestLiveWeatherUnparseableReturnsZeroReport(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{Text: "no structured data today"}}
	facade := newFacade(gen)

	report, err := facade.LiveWeather(context.Background(), 23.8, 90.4)

	require.NoError(t, err)
	assert.Empty(t, report.Upazila)
}

func TestMarketPrices(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		Text: `[{"name":"চাল","category":"শস্য","unit":"কেজি","price":58,"trend":"up","change":"+2"}]`,
	}}
	facade := newFacade(gen)

	prices, err := facade.MarketPrices(context.Background())

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "চাল", prices[0].Name)
	assert.Equal(t, "up", prices[0].Trend)
}

func TestChatAppendsMessageAndPersonalizesSystem(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{Text: "উত্তর"}}
	facade := advisory.NewFacade(gen, advisory.Options{UserRank: "অভিজ্ঞ কৃষক"})

	history := []domain.Turn{
		{Role: domain.RoleUser, Parts: []domain.Part{domain.TextPart{Text: "ধান কখন লাগাবো?"}}},
		{Role: domain.RoleModel, Parts: []domain.Part{domain.TextPart{Text: "আষাঢ় মাসে।"}}},
	}

	_, err := facade.Chat(context.Background(), history, "সার কত দেবো?", advisory.ChatContext{
		UserCrops: []domain.UserCrop{{Name: "ধান"}},
		Location:  "সাভার, ঢাকা",
	})

	require.NoError(t, err)
	require.Len(t, gen.lastReq.Turns, 3)
	last := gen.lastReq.Turns[2]
	assert.Equal(t, domain.RoleUser, last.Role)
	assert.Equal(t, domain.TextPart{Text: "সার কত দেবো?"}, last.Parts[0])

	assert.Contains(t, gen.lastReq.SystemInstruction, "অভিজ্ঞ কৃষক")
	assert.Contains(t, gen.lastReq.SystemInstruction, "ধান")
	assert.Contains(t, gen.lastReq.SystemInstruction, "সাভার, ঢাকা")
}

func TestQuiz(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		Text: "```json\n[{\"question\":\"ধানের প্রধান রোগ কোনটি?\",\"options\":[\"ব্লাস্ট\",\"মরিচা\"],\"correctAnswer\":0,\"explanation\":\"ব্লাস্ট ধানের প্রধান ছত্রাকজনিত রোগ।\"}]\n```",
	}}
	facade := newFacade(gen)

	questions, err := facade.Quiz(context.Background(), "ধান")

	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 0, questions[0].CorrectAnswer)
	assert.Equal(t, domain.OutputModeJSON, gen.lastReq.OutputMode)
}

func TestCropDiseaseInfo(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		Text: `{"cropName":"ধান","summary":"প্রধান রোগসমূহ","diseases":[{"name":"ব্লাস্ট","symptoms":"পাতায় দাগ","bioControl":"ট্রাইকোডার্মা","chemControl":"ট্রাইসাইক্লাজল","severity":"উচ্চ"}],"pests":[]}`,
	}}
	facade := newFacade(gen)

	report, err := facade.CropDiseaseInfo(context.Background(), "ধান")

	require.NoError(t, err)
	assert.Equal(t, "ধান", report.CropName)
	require.Len(t, report.Diseases, 1)
	assert.Equal(t, "ব্লাস্ট", report.Diseases[0].Name)
}

func TestGenerateFieldImage(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		InlineData:     "UE5HREFUQQ==",
		InlineMIMEType: "image/png",
	}}
	facade := newFacade(gen)

	img, err := facade.GenerateFieldImage(context.Background(), "a healthy paddy field at sunrise")

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,UE5HREFUQQ==", img.DataURI())
	assert.Equal(t, domain.CapabilityImage, gen.lastReq.Capability)
}

func TestGenerateFieldImageNoData(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{Text: "sorry"}}
	facade := newFacade(gen)

	_, err := facade.GenerateFieldImage(context.Background(), "x")
	assert.Error(t, err)
}

type fakeSpeech struct {
	lastText string
	audio    string
	err      error
}

func (f *fakeSpeech) Synthesize(ctx context.Context, text string) (string, error) {
	f.lastText = text
	return f.audio, f.err
}

func pcmBase64(samples []int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		raw[2*i] = byte(uint16(s))
		raw[2*i+1] = byte(uint16(s) >> 8)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestSynthesizeSpeechViaService(t *testing.T) {
	speech := &fakeSpeech{audio: pcmBase64([]int16{0, 16384, -16384, 32767})}
	gen := &fakeGenerator{}
	facade := newFacade(gen)
	facade.SetSpeechSynthesizer(speech)

	buf, err := facade.SynthesizeSpeech(context.Background(), "ধান ভালো আছে")

	require.NoError(t, err)
	assert.Equal(t, "ধান ভালো আছে", speech.lastText)
	assert.Equal(t, 4, buf.FrameCount())
	assert.InDelta(t, 0.5, buf.Frames[1][0], 0.001)
}

func TestSynthesizeSpeechViaGenerator(t *testing.T) {
	gen := &fakeGenerator{result: domain.GenerationResult{
		InlineData:     pcmBase64([]int16{100, -100}),
		InlineMIMEType: "audio/pcm",
	}}
	facade := newFacade(gen)

	buf, err := facade.SynthesizeSpeech(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, domain.CapabilitySpeech, gen.lastReq.Capability)
	assert.Equal(t, 2, buf.FrameCount())
}

func TestSynthesizeSpeechBadPayload(t *testing.T) {
	speech := &fakeSpeech{audio: "!!!not-base64!!!"}
	facade := newFacade(&fakeGenerator{})
	facade.SetSpeechSynthesizer(speech)

	_, err := facade.SynthesizeSpeech(context.Background(), "hello")
	assert.Error(t, err)
}

func TestUserFacingErrorsBangla(t *testing.T) {
	gen := &fakeGenerator{err: llmhttp.NewQuotaExhaustedError("gemini", "quota exceeded")}
	facade := newFacade(gen)

	_, err := facade.QuickTip(context.Background(), nil, "")

	require.Error(t, err)
	var userErr *advisory.UserFacingError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "ব্যবহারসীমা")
	assert.NotContains(t, userErr.Message, "quota", "internal wording must not leak")

	// The original error stays reachable for logging
	var httpErr *llmhttp.Error
	assert.ErrorAs(t, err, &httpErr)
}

func TestUserFacingErrorsEnglish(t *testing.T) {
	gen := &fakeGenerator{err: llmhttp.NewServiceUnavailableError("gemini", "down")}
	facade := advisory.NewFacade(gen, advisory.Options{Language: "en"})

	_, err := facade.PersonalizedAdvice(context.Background(), nil)

	require.Error(t, err)
	var userErr *advisory.UserFacingError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "temporarily unavailable")
}

func TestUserFacingErrorGenericForUnknown(t *testing.T) {
	gen := &fakeGenerator{err: assert.AnError}
	facade := newFacade(gen)

	_, err := facade.SearchAgriculturalInfo(context.Background(), "query")

	require.Error(t, err)
	var userErr *advisory.UserFacingError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "দুঃখিত")
}
