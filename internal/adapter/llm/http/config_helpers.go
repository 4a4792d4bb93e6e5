package http

import (
	"time"

	"github.com/krishiai/krishi-gateway/internal/config"
)

// ParseTimeout parses timeout with fallback chain: provider override > global > default.
// Negative durations are rejected (would cause runtime panic in http.Client.Timeout).
func ParseTimeout(providerOverride *string, globalTimeout string, defaultVal time.Duration) time.Duration {
	// Provider override takes precedence
	if providerOverride != nil && *providerOverride != "" {
		if d, err := time.ParseDuration(*providerOverride); err == nil && d >= 0 {
			return d
		}
	}

	// Try global config
	if globalTimeout != "" {
		if d, err := time.ParseDuration(globalTimeout); err == nil && d >= 0 {
			return d
		}
	}

	// Use default (should always be >= 0)
	if defaultVal < 0 {
		return 60 * time.Second // Fallback to safe default
	}
	return defaultVal
}

// BuildRetryConfig creates RetryConfig from provider + global HTTP config
func BuildRetryConfig(provider config.ProviderConfig, httpCfg config.HTTPConfig) RetryConfig {
	// Attempt budget: provider override > global > default
	maxAttempts := httpCfg.MaxAttempts
	if provider.MaxAttempts != nil {
		maxAttempts = *provider.MaxAttempts
	}
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	// Initial backoff: provider override > global > default
	initialBackoff := parseDuration(provider.InitialBackoff, httpCfg.InitialBackoff, 1500*time.Millisecond)

	// Max backoff: provider override > global > default
	maxBackoff := parseDuration(provider.MaxBackoff, httpCfg.MaxBackoff, 30*time.Second)

	multiplier := httpCfg.BackoffMultiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	return RetryConfig{
		MaxAttempts:    maxAttempts,
		InitialBackoff: initialBackoff,
		MaxBackoff:     maxBackoff,
		Multiplier:     multiplier,
	}
}

// parseDuration parses duration with fallback chain.
// Negative durations are rejected to prevent invalid backoff values.
func parseDuration(override *string, global string, defaultVal time.Duration) time.Duration {
	if override != nil && *override != "" {
		if d, err := time.ParseDuration(*override); err == nil && d >= 0 {
			return d
		}
	}

	if global != "" {
		if d, err := time.ParseDuration(global); err == nil && d >= 0 {
			return d
		}
	}

	if defaultVal < 0 {
		return 1500 * time.Millisecond // Safe fallback for backoff
	}
	return defaultVal
}
