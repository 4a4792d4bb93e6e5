package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/krishiai/krishi-gateway/internal/adapter/llm"
	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
	"github.com/krishiai/krishi-gateway/internal/config"
	"github.com/krishiai/krishi-gateway/internal/domain"
)

const (
	defaultBaseURL = "https://openrouter.ai"
	defaultTimeout = 60 * time.Second
)

// HTTPClient is an HTTP client for the OpenRouter chat completions API.
type HTTPClient struct {
	apiKey    string
	baseURL   string
	timeout   time.Duration
	retryConf llmhttp.RetryConfig
	client    *http.Client

	// Observability components
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
	pricing llmhttp.Pricing
}

// NewHTTPClient creates a new OpenRouter HTTP client.
func NewHTTPClient(apiKey string, providerCfg config.ProviderConfig, httpCfg config.HTTPConfig) *HTTPClient {
	timeout := llmhttp.ParseTimeout(providerCfg.Timeout, httpCfg.Timeout, defaultTimeout)
	retryConf := llmhttp.BuildRetryConfig(providerCfg, httpCfg)

	baseURL := defaultBaseURL
	if providerCfg.BaseURL != "" {
		baseURL = providerCfg.BaseURL
	}

	return &HTTPClient{
		apiKey:    apiKey,
		baseURL:   baseURL,
		timeout:   timeout,
		retryConf: retryConf,
		client:    &http.Client{Timeout: timeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *HTTPClient) SetBaseURL(url string) {
	c.baseURL = url
}

// SetLogger sets the logger for this client.
func (c *HTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// SetMetrics sets the metrics tracker for this client.
func (c *HTTPClient) SetMetrics(metrics llmhttp.Metrics) {
	c.metrics = metrics
}

// SetPricing sets the pricing calculator for this client.
func (c *HTTPClient) SetPricing(pricing llmhttp.Pricing) {
	c.pricing = pricing
}

// Complete sends one chat-completions request and returns the
// normalized result. The wire request must already be translated; the
// model field identifies which fallback model serves it.
func (c *HTTPClient) Complete(ctx context.Context, wireReq ChatCompletionRequest, capability domain.Capability) (domain.GenerationResult, error) {
	startTime := time.Now()

	if c.logger != nil {
		prompt := promptText(wireReq)
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:        "openrouter",
			Model:           wireReq.Model,
			Capability:      capability.String(),
			Timestamp:       startTime,
			PromptChars:     len(prompt),
			EstimatedTokens: llm.EstimateTokens(prompt),
			APIKey:          c.apiKey,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordRequest("openrouter", wireReq.Model)
	}

	jsonData, err := json.Marshal(wireReq)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/api/v1/chat/completions"

	var bodyBytes []byte

	err = llmhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
		if reqErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   reqErr.Error(),
				Retryable: false,
				Provider:  "openrouter",
			}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, callErr := c.client.Do(httpReq)
		if callErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeTimeout,
				Message:   callErr.Error(),
				Retryable: true,
				Provider:  "openrouter",
			}
		}
		defer resp.Body.Close()

		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   readErr.Error(),
				Retryable: false,
				Provider:  "openrouter",
			}
		}

		if resp.StatusCode >= 400 {
			return llmhttp.Classify("openrouter", resp.StatusCode, errorMessage(raw))
		}

		bodyBytes = raw
		return nil
	}, c.retryConf)

	duration := time.Since(startTime)

	if err != nil {
		c.observeError(ctx, wireReq.Model, capability, duration, err)
		return domain.GenerationResult{}, err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return domain.GenerationResult{}, fmt.Errorf("parse response: %w", err)
	}

	result := TranslateResponse(chatResp)

	var cost float64
	if c.pricing != nil {
		cost = c.pricing.GetCost("openrouter", wireReq.Model, result.TokensIn, result.TokensOut)
	}

	if c.logger != nil {
		finishReason := ""
		if len(chatResp.Choices) > 0 {
			finishReason = chatResp.Choices[0].FinishReason
		}
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:     "openrouter",
			Model:        wireReq.Model,
			Capability:   capability.String(),
			Timestamp:    time.Now(),
			Duration:     duration,
			TokensIn:     result.TokensIn,
			TokensOut:    result.TokensOut,
			Cost:         cost,
			StatusCode:   http.StatusOK,
			FinishReason: finishReason,
			FellBack:     true,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordDuration("openrouter", wireReq.Model, duration)
		c.metrics.RecordTokens("openrouter", wireReq.Model, result.TokensIn, result.TokensOut)
		c.metrics.RecordCost("openrouter", wireReq.Model, cost)
	}

	return result, nil
}

func (c *HTTPClient) observeError(ctx context.Context, model string, capability domain.Capability, duration time.Duration, err error) {
	var httpErr *llmhttp.Error
	if !errors.As(err, &httpErr) {
		return
	}
	if c.logger != nil {
		c.logger.LogError(ctx, llmhttp.ErrorLog{
			Provider:   "openrouter",
			Model:      model,
			Capability: capability.String(),
			Timestamp:  time.Now(),
			Duration:   duration,
			Error:      err,
			ErrorType:  httpErr.Type,
			StatusCode: httpErr.StatusCode,
			Retryable:  httpErr.Retryable,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordError("openrouter", model, httpErr.Type)
	}
}

func errorMessage(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return string(body)
}

// promptText concatenates the textual content blocks, skipping image
// blocks. Feeds the request log's size and token estimate fields.
func promptText(req ChatCompletionRequest) string {
	var sb strings.Builder
	for _, msg := range req.Messages {
		for _, block := range msg.Content {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}
