package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files and environment variables.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "kgw"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "KGW"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand environment variables in config values
	cfg = expandEnvVars(cfg)

	return cfg, nil
}

// ValidateKeys fails fast on missing or placeholder API keys for the
// enabled providers. A gateway with a dead key should refuse to start
// rather than fail on the first user request.
func ValidateKeys(cfg Config) error {
	for name, provider := range cfg.Providers {
		if !provider.Enabled {
			continue
		}
		key := strings.TrimSpace(provider.APIKey)
		if key == "" || strings.HasPrefix(key, "$") || key == "changeme" || key == "YOUR_API_KEY" {
			return fmt.Errorf("provider %q is enabled but has no usable API key (set %s)", name, keyEnvHint(name))
		}
	}
	return nil
}

func keyEnvHint(provider string) string {
	return "KGW_PROVIDERS_" + strings.ToUpper(provider) + "_APIKEY"
}

// expandEnvVars expands ${VAR} and $VAR syntax in configuration strings.
func expandEnvVars(cfg Config) Config {
	for name, provider := range cfg.Providers {
		provider.APIKey = expandEnvString(provider.APIKey)
		provider.BaseURL = expandEnvString(provider.BaseURL)
		provider.TextModel = expandEnvString(provider.TextModel)
		provider.VisionModel = expandEnvString(provider.VisionModel)
		provider.SpeechModel = expandEnvString(provider.SpeechModel)
		provider.ImageModel = expandEnvString(provider.ImageModel)

		if provider.Timeout != nil {
			timeout := expandEnvString(*provider.Timeout)
			provider.Timeout = &timeout
		}
		if provider.InitialBackoff != nil {
			backoff := expandEnvString(*provider.InitialBackoff)
			provider.InitialBackoff = &backoff
		}
		if provider.MaxBackoff != nil {
			backoff := expandEnvString(*provider.MaxBackoff)
			provider.MaxBackoff = &backoff
		}

		cfg.Providers[name] = provider
	}

	cfg.HTTP.Timeout = expandEnvString(cfg.HTTP.Timeout)
	cfg.HTTP.InitialBackoff = expandEnvString(cfg.HTTP.InitialBackoff)
	cfg.HTTP.MaxBackoff = expandEnvString(cfg.HTTP.MaxBackoff)

	cfg.TTS.BaseURL = expandEnvString(cfg.TTS.BaseURL)
	cfg.TTS.Voice = expandEnvString(cfg.TTS.Voice)

	cfg.Store.Path = expandEnvString(cfg.Store.Path)

	cfg.Observability.Logging.Level = expandEnvString(cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = expandEnvString(cfg.Observability.Logging.Format)

	return cfg
}

// expandEnvString replaces ${VAR} or $VAR with environment variable values.
func expandEnvString(s string) string {
	if s == "" {
		return s
	}

	// Replace ${VAR} syntax
	re := regexp.MustCompile(`\$\{([A-Z_][A-Z0-9_]*)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	// Replace $VAR syntax (without braces)
	re = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // Keep original if not found
	})

	return s
}

func locateConfigFile(name string, paths []string) string {
	searchPaths := append([]string{}, paths...)
	searchPaths = append(searchPaths, ".")
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+".yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	// HTTP defaults: 3 total attempts, 1.5s initial backoff doubling
	// between retries, per-call timeout.
	v.SetDefault("http.timeout", "60s")
	v.SetDefault("http.maxAttempts", 3)
	v.SetDefault("http.initialBackoff", "1500ms")
	v.SetDefault("http.maxBackoff", "30s")
	v.SetDefault("http.backoffMultiplier", 2.0)

	// Primary provider defaults (Gemini).
	v.SetDefault("providers.gemini.enabled", true)
	v.SetDefault("providers.gemini.textModel", "gemini-3-flash-preview")
	v.SetDefault("providers.gemini.visionModel", "gemini-3-pro-preview")
	v.SetDefault("providers.gemini.speechModel", "gemini-2.5-flash-preview-tts")
	v.SetDefault("providers.gemini.imageModel", "gemini-2.5-flash-image")

	// Fallback provider defaults (OpenRouter). Vision and text traffic
	// route to different models; picking the wrong one is a hard error
	// upstream, not a degraded answer.
	v.SetDefault("providers.openrouter.enabled", true)
	v.SetDefault("providers.openrouter.textModel", "meta-llama/llama-3.1-8b-instruct")
	v.SetDefault("providers.openrouter.visionModel", "google/gemini-flash-1.5")

	// Speech defaults.
	v.SetDefault("tts.voice", "Kore")

	// Advisory defaults.
	v.SetDefault("advisory.language", "bn")
	v.SetDefault("advisory.userRank", "নবিশ কৃষক")

	// Store defaults.
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", "kgw.db")

	// Observability defaults.
	v.SetDefault("observability.logging.enabled", true)
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "human")
	v.SetDefault("observability.logging.redactAPIKeys", true)
	v.SetDefault("observability.metrics.enabled", true)
}
