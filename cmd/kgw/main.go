package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/krishiai/krishi-gateway/internal/adapter/cli"
	"github.com/krishiai/krishi-gateway/internal/adapter/llm/gemini"
	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/adapter/llm/openrouter"
	"github.com/krishiai/krishi-gateway/internal/adapter/observability"
	jsonout "github.com/krishiai/krishi-gateway/internal/adapter/output/json"
	"github.com/krishiai/krishi-gateway/internal/adapter/output/markdown"
	storeadapter "github.com/krishiai/krishi-gateway/internal/adapter/store"
	"github.com/krishiai/krishi-gateway/internal/adapter/store/sqlite"
	"github.com/krishiai/krishi-gateway/internal/adapter/tts"
	"github.com/krishiai/krishi-gateway/internal/config"
	"github.com/krishiai/krishi-gateway/internal/domain"
	"github.com/krishiai/krishi-gateway/internal/extract"
	"github.com/krishiai/krishi-gateway/internal/store"
	"github.com/krishiai/krishi-gateway/internal/usecase/advisory"
	"github.com/krishiai/krishi-gateway/internal/usecase/generate"
	"github.com/krishiai/krishi-gateway/internal/version"
)

// defaultOutputDir is where diagnose --save and schedule --save land.
const defaultOutputDir = "out"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return
		}
		// Keep API keys out of error output.
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "kgw",
		EnvPrefix:   "KGW",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := config.ValidateKeys(cfg); err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.Observability.Logging)
	extract.SetLogger(logger)

	var metrics llmhttp.Metrics
	if cfg.Observability.Metrics.Enabled {
		metrics = llmhttp.NewDefaultMetrics()
	}
	pricing := llmhttp.NewDefaultPricing()

	primary, fallback := buildProviders(cfg, logger, metrics, pricing)
	if primary == nil {
		return fmt.Errorf("primary provider (gemini) is disabled; nothing to serve requests")
	}

	gateway := generate.NewGateway(primary, fallback)
	gateway.SetLogger(logger)
	gateway.SetMetrics(metrics)

	var generator advisory.Generator = gateway

	var ledger store.Store
	if cfg.Store.Enabled {
		ledger, err = openLedger(cfg.Store.Path)
		if err != nil {
			log.Printf("warning: usage ledger unavailable: %v", err)
		} else {
			defer ledger.Close()

			recorder := storeadapter.NewRecorder(gateway, ledger, primary.Name())
			recorder.SetPricing(pricing)
			recorder.SetLogger(logger)
			generator = recorder
		}
	}

	facade := advisory.NewFacade(generator, advisory.Options{
		Language: cfg.Advisory.Language,
		UserRank: cfg.Advisory.UserRank,
	})
	facade.SetLogger(logger)

	if cfg.TTS.BaseURL != "" {
		facade.SetSpeechSynthesizer(tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.Voice))
	}

	nowFunc := func() string {
		return time.Now().UTC().Format("20060102T150405Z")
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Advisor:        facade,
		Ledger:         ledger,
		DiagnosisSaver: diagnosisSaver{writer: markdown.NewWriter(nowFunc)},
		ResultSaver:    resultSaver{writer: jsonout.NewWriter(nowFunc)},
		Version:        version.Value(),
	})

	return root.ExecuteContext(ctx)
}

// buildProviders constructs the primary Gemini provider and, when
// enabled, the OpenRouter fallback.
func buildProviders(cfg config.Config, logger llmhttp.Logger, metrics llmhttp.Metrics, pricing llmhttp.Pricing) (primary, fallback generate.Provider) {
	geminiCfg := cfg.Provider("gemini")
	if geminiCfg.Enabled {
		client := gemini.NewHTTPClient(geminiCfg.APIKey, geminiCfg, cfg.HTTP)
		client.SetVoice(cfg.TTS.Voice)
		client.SetLogger(logger)
		client.SetMetrics(metrics)
		client.SetPricing(pricing)

		primary = gemini.NewProvider(gemini.Models{
			Text:   geminiCfg.TextModel,
			Vision: geminiCfg.VisionModel,
			Speech: geminiCfg.SpeechModel,
			Image:  geminiCfg.ImageModel,
		}, client)
	}

	routerCfg := cfg.Provider("openrouter")
	if routerCfg.Enabled {
		client := openrouter.NewHTTPClient(routerCfg.APIKey, routerCfg, cfg.HTTP)
		client.SetLogger(logger)
		client.SetMetrics(metrics)
		client.SetPricing(pricing)

		fallback = openrouter.NewProvider(openrouter.Models{
			Text:   routerCfg.TextModel,
			Vision: routerCfg.VisionModel,
		}, client)
	}

	return primary, fallback
}

// openLedger creates the SQLite usage ledger, making the parent
// directory first.
func openLedger(path string) (store.Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	return sqlite.NewStore(path)
}

// defaultConfigPaths lists where kgw.yaml is searched, nearest first.
func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "kgw"))
	}
	return paths
}

// diagnosisSaver adapts the Markdown writer to the CLI port.
type diagnosisSaver struct {
	writer *markdown.Writer
}

func (s diagnosisSaver) Write(ctx context.Context, crop string, diagnosis domain.CropDiagnosis) (string, error) {
	return s.writer.Write(ctx, markdown.DiagnosisArtifact{
		OutputDir: defaultOutputDir,
		Crop:      crop,
		Diagnosis: diagnosis,
	})
}

// resultSaver adapts the JSON writer to the CLI port.
type resultSaver struct {
	writer *jsonout.Writer
}

func (s resultSaver) Write(ctx context.Context, name string, payload interface{}) (string, error) {
	return s.writer.Write(ctx, jsonout.Artifact{
		OutputDir: defaultOutputDir,
		Name:      name,
		Payload:   payload,
	})
}
