package cli_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiai/krishi-gateway/internal/adapter/cli"
	"github.com/krishiai/krishi-gateway/internal/audio"
	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/store"
	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
)

type fakeAdvisor struct {
	diagnosis     domain.CropDiagnosis
	diagnoseOpts  advisory.DiagnoseOptions
	diagnoseMIME  string
	report        domain.GroundedReport
	weather       domain.WeatherReport
	prices        []domain.MarketPrice
	tip           string
	advice        string
	tasks         []domain.TaskItem
	questions     []domain.QuizQuestion
	cards         []domain.FlashCard
	diseaseReport domain.CropDiseaseReport
	image         advisory.GeneratedImage
	speech        *audio.Buffer
	chatHistory   []domain.Turn
	chatMessage   string
	err           error
}

func (f *fakeAdvisor) DiagnoseCropImage(ctx context.Context, imageBase64, mimeType string, opts advisory.DiagnoseOptions) (domain.CropDiagnosis, error) {
	f.diagnoseOpts = opts
	f.diagnoseMIME = mimeType
	return f.diagnosis, f.err
}

func (f *fakeAdvisor) IdentifyPlantSpecimen(ctx context.Context, imageBase64, mimeType string) (domain.GroundedReport, error) {
	f.diagnoseMIME = mimeType
	return f.report, f.err
}

func (f *fakeAdvisor) LiveWeather(ctx context.Context, lat, lng float64) (domain.WeatherReport, error) {
	return f.weather, f.err
}

func (f *fakeAdvisor) MarketPrices(ctx context.Context) ([]domain.MarketPrice, error) {
	return f.prices, f.err
}

func (f *fakeAdvisor) GroundedAdvisoryReport(ctx context.Context, location string) (domain.GroundedReport, error) {
	return f.report, f.err
}

func (f *fakeAdvisor) SearchAgriculturalInfo(ctx context.Context, query string) (domain.GroundedReport, error) {
	return f.report, f.err
}

func (f *fakeAdvisor) Chat(ctx context.Context, history []domain.Turn, message string, chatCtx advisory.ChatContext) (domain.GroundedReport, error) {
	f.chatHistory = history
	f.chatMessage = message
	return f.report, f.err
}

func (f *fakeAdvisor) QuickTip(ctx context.Context, crops []domain.UserCrop, weatherCondition string) (string, error) {
	return f.tip, f.err
}

func (f *fakeAdvisor) PersonalizedAdvice(ctx context.Context, crops []domain.UserCrop) (string, error) {
	return f.advice, f.err
}

func (f *fakeAdvisor) CropSchedule(ctx context.Context, crop, startDate, season string) ([]domain.TaskItem, error) {
	return f.tasks, f.err
}

func (f *fakeAdvisor) Quiz(ctx context.Context, topic string) ([]domain.QuizQuestion, error) {
	return f.questions, f.err
}

func (f *fakeAdvisor) FlashCards(ctx context.Context, topic string) ([]domain.FlashCard, error) {
	return f.cards, f.err
}

func (f *fakeAdvisor) CropDiseaseInfo(ctx context.Context, crop string) (domain.CropDiseaseReport, error) {
	return f.diseaseReport, f.err
}

func (f *fakeAdvisor) GenerateFieldImage(ctx context.Context, prompt string) (advisory.GeneratedImage, error) {
	return f.image, f.err
}

func (f *fakeAdvisor) SynthesizeSpeech(ctx context.Context, text string) (*audio.Buffer, error) {
	return f.speech, f.err
}

type fakeResultSaver struct {
	name    string
	payload interface{}
}

func (f *fakeResultSaver) Write(ctx context.Context, name string, payload interface{}) (string, error) {
	f.name = name
	f.payload = payload
	return "/tmp/out/" + name + ".json", nil
}

func execute(t *testing.T, deps cli.Dependencies, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	deps.Args.OutWriter = &out
	deps.Args.ErrWriter = &out

	root := cli.NewRootCommand(deps)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func writeTestImage(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(path, []byte("fake-jpeg-bytes"), 0o644))
	return path
}

func TestVersionFlag(t *testing.T) {
	advisor := &fakeAdvisor{}
	out, err := execute(t, cli.Dependencies{Advisor: advisor, Version: "v1.2.3"}, "--version")

	assert.ErrorIs(t, err, cli.ErrVersionRequested)
	assert.Contains(t, out, "v1.2.3")
}

func TestDiagnoseCommand(t *testing.T) {
	advisor := &fakeAdvisor{
		diagnosis: domain.CropDiagnosis{
			Diagnosis:  "Bacterial Leaf Blight",
			Category:   domain.CategoryDisease,
			Confidence: 85,
			FullText:   "The lesions indicate bacterial leaf blight.",
			Citations:  []domain.Citation{{Title: "BRRI", URI: "https://brri.gov.bd"}},
		},
	}

	out, err := execute(t, cli.Dependencies{Advisor: advisor},
		"diagnose", writeTestImage(t), "--crop", "ধান", "--focus", "পাতার দাগ", "--user-crop", "ধান:বোরো")
	require.NoError(t, err)

	assert.Contains(t, out, "Diagnosis: Bacterial Leaf Blight")
	assert.Contains(t, out, "Category: Disease")
	assert.Contains(t, out, "Confidence: 85%")
	assert.Contains(t, out, "BRRI")

	assert.Equal(t, "image/jpeg", advisor.diagnoseMIME)
	assert.Equal(t, "ধান", advisor.diagnoseOpts.CropFamily)
	assert.Equal(t, "পাতার দাগ", advisor.diagnoseOpts.Focus)
	require.Len(t, advisor.diagnoseOpts.UserCrops, 1)
	assert.Equal(t, domain.UserCrop{Name: "ধান", Season: "বোরো"}, advisor.diagnoseOpts.UserCrops[0])
}

func TestDiagnoseRejectsUnknownImageType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.bmp")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := execute(t, cli.Dependencies{Advisor: &fakeAdvisor{}}, "diagnose", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
}

func TestWeatherCommand(t *testing.T) {
	advisor := &fakeAdvisor{
		weather: domain.WeatherReport{
			Upazila:   "সাভার",
			District:  "ঢাকা",
			Temp:      31.5,
			Condition: "আংশিক মেঘলা",
			Humidity:  78,
			Forecast: []domain.ForecastDay{
				{Date: "2024-06-16", Condition: "বৃষ্টি", MinTemp: 26, MaxTemp: 31, RainProbability: 80},
			},
		},
	}

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "weather", "--lat", "23.8", "--lng", "90.2")
	require.NoError(t, err)

	assert.Contains(t, out, "সাভার, ঢাকা: 31.5°C")
	assert.Contains(t, out, "2024-06-16")
}

func TestWeatherRequiresCoordinates(t *testing.T) {
	_, err := execute(t, cli.Dependencies{Advisor: &fakeAdvisor{}}, "weather")
	require.Error(t, err)
}

func TestPricesCommand(t *testing.T) {
	advisor := &fakeAdvisor{
		prices: []domain.MarketPrice{
			{Name: "মোটা চাল", Unit: "কেজি", Price: 52, Trend: "up", Change: "+2"},
		},
	}

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "prices")
	require.NoError(t, err)
	assert.Contains(t, out, "মোটা চাল")
	assert.Contains(t, out, "up")
}

func TestAskSingleShot(t *testing.T) {
	advisor := &fakeAdvisor{
		report: domain.GroundedReport{Text: "ধানের চারা রোপণের সেরা সময় এখন।"},
	}

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "ask", "কখন", "ধান", "লাগাবো?")
	require.NoError(t, err)

	assert.Contains(t, out, "ধানের চারা রোপণের সেরা সময়")
	assert.Equal(t, "কখন ধান লাগাবো?", advisor.chatMessage)
	assert.Empty(t, advisor.chatHistory)
}

func TestScheduleSave(t *testing.T) {
	advisor := &fakeAdvisor{
		tasks: []domain.TaskItem{
			{Title: "চারা রোপণ", DueDate: "2024-07-01", Category: "planting"},
		},
	}
	saver := &fakeResultSaver{}

	out, err := execute(t, cli.Dependencies{Advisor: advisor, ResultSaver: saver},
		"schedule", "ধান", "--start", "2024-06-15", "--save")
	require.NoError(t, err)

	assert.Contains(t, out, "চারা রোপণ")
	assert.Contains(t, out, "Schedule saved to /tmp/out/crop-schedule.json")
	assert.Equal(t, "crop-schedule", saver.name)
}

func TestQuizCommand(t *testing.T) {
	advisor := &fakeAdvisor{
		questions: []domain.QuizQuestion{
			{
				Question:      "ধানের ব্লাস্ট রোগের কারণ কী?",
				Options:       []string{"ছত্রাক", "ব্যাকটেরিয়া"},
				CorrectAnswer: 0,
				Explanation:   "ব্লাস্ট একটি ছত্রাকজনিত রোগ।",
			},
		},
	}

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "quiz", "ধান")
	require.NoError(t, err)

	assert.Contains(t, out, "1. ধানের ব্লাস্ট রোগের কারণ কী?")
	assert.Contains(t, out, "* ছত্রাক")
	assert.Contains(t, out, "  ব্যাকটেরিয়া")
}

func TestSpeakCommand(t *testing.T) {
	buf, err := audio.DecodePCM16([]byte{0x00, 0x40, 0x00, 0x40}, audio.DefaultSampleRate, audio.DefaultChannels)
	require.NoError(t, err)

	advisor := &fakeAdvisor{speech: buf}
	outPath := filepath.Join(t.TempDir(), "advice.wav")

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "speak", "ধান কাটার সময় হয়েছে", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data[:4]))
}

func TestImageCommand(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	advisor := &fakeAdvisor{
		image: advisory.GeneratedImage{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(payload),
		},
	}
	outPath := filepath.Join(t.TempDir(), "field.png")

	out, err := execute(t, cli.Dependencies{Advisor: advisor}, "image", "সবুজ ধানক্ষেত", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "image/png")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

type fakeLedger struct {
	summary    store.UsageSummary
	byProvider map[string]store.UsageSummary
	records    []store.UsageRecord
	since      time.Time
}

func (f *fakeLedger) RecordUsage(ctx context.Context, rec store.UsageRecord) error { return nil }

func (f *fakeLedger) ListRecent(ctx context.Context, limit int) ([]store.UsageRecord, error) {
	return f.records, nil
}

func (f *fakeLedger) Summary(ctx context.Context, since time.Time) (store.UsageSummary, error) {
	f.since = since
	return f.summary, nil
}

func (f *fakeLedger) SummaryByProvider(ctx context.Context, since time.Time) (map[string]store.UsageSummary, error) {
	return f.byProvider, nil
}

func (f *fakeLedger) Close() error { return nil }

func TestStatsCommand(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{
		summary: store.UsageSummary{Requests: 10, Errors: 1, Fallbacks: 2, TokensIn: 5000, TokensOut: 1500, Cost: 0.0123},
		byProvider: map[string]store.UsageSummary{
			"gemini": {Requests: 8, Cost: 0.01},
		},
		records: []store.UsageRecord{
			{Timestamp: now, Provider: "gemini", Model: "gemini-3-flash-preview", Capability: "text", DurationMS: 800},
		},
	}

	out, err := execute(t, cli.Dependencies{
		Advisor: &fakeAdvisor{},
		Ledger:  ledger,
		Now:     func() time.Time { return now },
	}, "stats", "--period", "7d", "--recent", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Requests: 10 (errors: 1, fallbacks: 2)")
	assert.Contains(t, out, "Tokens: 5000 in / 1500 out")
	assert.Contains(t, out, "gemini")
	assert.Contains(t, out, "Recent calls:")
	assert.Equal(t, now.AddDate(0, 0, -7), ledger.since)
}

func TestStatsWithoutLedger(t *testing.T) {
	_, err := execute(t, cli.Dependencies{Advisor: &fakeAdvisor{}}, "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage ledger is disabled")
}

func TestUserFacingErrorPropagates(t *testing.T) {
	advisor := &fakeAdvisor{err: assert.AnError}

	_, err := execute(t, cli.Dependencies{Advisor: advisor}, "tip")
	assert.ErrorIs(t, err, assert.AnError)
}
