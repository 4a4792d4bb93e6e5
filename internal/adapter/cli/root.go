// Package cli wires the advisory capabilities into a Cobra command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishiai/krishi-gateway/internal/audio"
	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/store"
	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// Advisor is the capability surface the commands call. In production it
// is the advisory facade.
type Advisor interface {
	DiagnoseCropImage(ctx context.Context, imageBase64, mimeType string, opts advisory.DiagnoseOptions) (domain.CropDiagnosis, error)
	IdentifyPlantSpecimen(ctx context.Context, imageBase64, mimeType string) (domain.GroundedReport, error)
	LiveWeather(ctx context.Context, lat, lng float64) (domain.WeatherReport, error)
	MarketPrices(ctx context.Context) ([]domain.MarketPrice, error)
	GroundedAdvisoryReport(ctx context.Context, location string) (domain.GroundedReport, error)
	SearchAgriculturalInfo(ctx context.Context, query string) (domain.GroundedReport, error)
	Chat(ctx context.Context, history []domain.Turn, message string, chatCtx advisory.ChatContext) (domain.GroundedReport, error)
	QuickTip(ctx context.Context, crops []domain.UserCrop, weatherCondition string) (string, error)
	PersonalizedAdvice(ctx context.Context, crops []domain.UserCrop) (string, error)
	CropSchedule(ctx context.Context, crop, startDate, season string) ([]domain.TaskItem, error)
	Quiz(ctx context.Context, topic string) ([]domain.QuizQuestion, error)
	FlashCards(ctx context.Context, topic string) ([]domain.FlashCard, error)
	CropDiseaseInfo(ctx context.Context, crop string) (domain.CropDiseaseReport, error)
	GenerateFieldImage(ctx context.Context, prompt string) (advisory.GeneratedImage, error)
	SynthesizeSpeech(ctx context.Context, text string) (*audio.Buffer, error)
}

// DiagnosisSaver persists a diagnosis as a Markdown report.
type DiagnosisSaver interface {
	Write(ctx context.Context, crop string, diagnosis domain.CropDiagnosis) (string, error)
}

// ResultSaver persists a structured result as JSON.
type ResultSaver interface {
	Write(ctx context.Context, name string, payload interface{}) (string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
	InReader  io.Reader
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Advisor        Advisor
	Ledger         store.Store // nil when the usage ledger is disabled
	DiagnosisSaver DiagnosisSaver
	ResultSaver    ResultSaver
	Args           Arguments
	Version        string

	// Now supplies the clock for stats period cutoffs; defaults to
	// time.Now.
	Now func() time.Time
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	root := &cobra.Command{
		Use:   "kgw",
		Short: "Agricultural advisory gateway CLI",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)
	if deps.Args.InReader != nil {
		root.SetIn(deps.Args.InReader)
	}

	root.AddCommand(
		diagnoseCommand(deps),
		identifyCommand(deps),
		weatherCommand(deps),
		pricesCommand(deps),
		reportCommand(deps),
		searchCommand(deps),
		askCommand(deps),
		tipCommand(deps),
		adviseCommand(deps),
		scheduleCommand(deps),
		quizCommand(deps),
		cardsCommand(deps),
		diseasesCommand(deps),
		speakCommand(deps),
		imageCommand(deps),
		statsCommand(deps),
	)

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

// parseCrops turns repeated --crop name[:season] flags into UserCrops.
func parseCrops(values []string) []domain.UserCrop {
	crops := make([]domain.UserCrop, 0, len(values))
	for _, v := range values {
		crop := domain.UserCrop{Name: v}
		if name, season, found := strings.Cut(v, ":"); found {
			crop = domain.UserCrop{Name: name, Season: season}
		}
		crops = append(crops, crop)
	}
	return crops
}
