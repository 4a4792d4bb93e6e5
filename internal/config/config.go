package config

// Config represents the full application configuration. It is built
// once at startup, passed by value into constructors, and never
// mutated afterwards; there is no ambient global configuration state.
type Config struct {
	Providers     map[string]ProviderConfig `yaml:"providers"`
	HTTP          HTTPConfig                `yaml:"http"`
	TTS           TTSConfig                 `yaml:"tts"`
	Advisory      AdvisoryConfig            `yaml:"advisory"`
	Store         StoreConfig               `yaml:"store"`
	Observability ObservabilityConfig       `yaml:"observability"`
}

// ProviderConfig configures a single generation provider.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"` // override for testing/self-hosted routers

	// Model routing. Gemini uses TextModel/VisionModel/SpeechModel/
	// ImageModel per capability; OpenRouter uses TextModel/VisionModel.
	TextModel   string `yaml:"textModel"`
	VisionModel string `yaml:"visionModel"`
	SpeechModel string `yaml:"speechModel"`
	ImageModel  string `yaml:"imageModel"`

	// HTTP overrides (optional, use global HTTP config if not set)
	Timeout        *string `yaml:"timeout,omitempty"`
	MaxAttempts    *int    `yaml:"maxAttempts,omitempty"`
	InitialBackoff *string `yaml:"initialBackoff,omitempty"`
	MaxBackoff     *string `yaml:"maxBackoff,omitempty"`
}

// HTTPConfig holds global HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxAttempts       int     `yaml:"maxAttempts"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

// TTSConfig configures the optional internal speech-synthesis service.
// When BaseURL is empty, speech requests go through the primary
// provider's TTS model instead.
type TTSConfig struct {
	BaseURL string `yaml:"baseURL"`
	Voice   string `yaml:"voice"`
}

// AdvisoryConfig tunes the capability facade.
type AdvisoryConfig struct {
	// Language for generated advisory text ("bn" or "en").
	Language string `yaml:"language"`
	// UserRank personalizes prompt difficulty (e.g. "নবিশ কৃষক").
	UserRank string `yaml:"userRank"`
}

// StoreConfig configures the usage ledger.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging and metrics tracking.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}

// MetricsConfig configures performance and cost metrics tracking.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Provider returns the named provider configuration, or a zero value
// when the section is absent.
func (c Config) Provider(name string) ProviderConfig {
	if c.Providers == nil {
		return ProviderConfig{}
	}
	return c.Providers[name]
}
