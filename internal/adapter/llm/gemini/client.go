package gemini

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
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 60 * time.Second
)

// HTTPClient is an HTTP client for the Google Gemini generateContent API.
type HTTPClient struct {
	apiKey    string
	voice     string
	baseURL   string
	timeout   time.Duration
	retryConf llmhttp.RetryConfig
	client    *http.Client

	// Observability components
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
	pricing llmhttp.Pricing
}

// NewHTTPClient creates a new Gemini HTTP client.
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

// SetVoice sets the default speech-synthesis voice.
func (c *HTTPClient) SetVoice(voice string) {
	c.voice = voice
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

// Generate sends one generation request and returns the normalized
// result. Transient failures retry in place with exponential backoff;
// everything else surfaces as a typed *llmhttp.Error.
func (c *HTTPClient) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	startTime := time.Now()

	if c.logger != nil {
		prompt := promptText(req)
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:        "gemini",
			Model:           req.Model,
			Capability:      req.Capability.String(),
			Timestamp:       startTime,
			PromptChars:     len(prompt),
			EstimatedTokens: llm.EstimateTokens(prompt),
			APIKey:          c.apiKey,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordRequest("gemini", req.Model)
	}

	wireReq := translateRequest(req, c.voice)

	jsonData, err := json.Marshal(wireReq)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, req.Model, c.apiKey)

	var bodyBytes []byte

	err = llmhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		// Recreate request for each retry
		httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
		if reqErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   llmhttp.RedactURLSecrets(reqErr.Error()),
				Retryable: false,
				Provider:  "gemini",
			}
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, callErr := c.client.Do(httpReq)
		if callErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeTimeout,
				Message:   llmhttp.RedactURLSecrets(callErr.Error()),
				Retryable: true,
				Provider:  "gemini",
			}
		}
		defer resp.Body.Close()

		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   readErr.Error(),
				Retryable: false,
				Provider:  "gemini",
			}
		}

		if resp.StatusCode >= 400 {
			return llmhttp.Classify("gemini", resp.StatusCode, errorMessage(raw))
		}

		bodyBytes = raw
		return nil
	}, c.retryConf)

	duration := time.Since(startTime)

	if err != nil {
		c.observeError(ctx, req, duration, err)
		return domain.GenerationResult{}, err
	}

	var genResp GenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return domain.GenerationResult{}, fmt.Errorf("parse response: %w", err)
	}

	if len(genResp.Candidates) > 0 && genResp.Candidates[0].FinishReason == "SAFETY" {
		filtered := llmhttp.NewContentFilteredError("gemini", "content blocked by safety filters")
		c.observeError(ctx, req, duration, filtered)
		return domain.GenerationResult{}, filtered
	}

	result := translateResponse(genResp)

	var cost float64
	if c.pricing != nil {
		cost = c.pricing.GetCost("gemini", req.Model, result.TokensIn, result.TokensOut)
	}

	if c.logger != nil {
		finishReason := ""
		if len(genResp.Candidates) > 0 {
			finishReason = genResp.Candidates[0].FinishReason
		}
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:     "gemini",
			Model:        req.Model,
			Capability:   req.Capability.String(),
			Timestamp:    time.Now(),
			Duration:     duration,
			TokensIn:     result.TokensIn,
			TokensOut:    result.TokensOut,
			Cost:         cost,
			StatusCode:   http.StatusOK,
			FinishReason: finishReason,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordDuration("gemini", req.Model, duration)
		c.metrics.RecordTokens("gemini", req.Model, result.TokensIn, result.TokensOut)
		c.metrics.RecordCost("gemini", req.Model, cost)
	}

	return result, nil
}

func (c *HTTPClient) observeError(ctx context.Context, req domain.GenerationRequest, duration time.Duration, err error) {
	var httpErr *llmhttp.Error
	if !errors.As(err, &httpErr) {
		return
	}
	if c.logger != nil {
		c.logger.LogError(ctx, llmhttp.ErrorLog{
			Provider:   "gemini",
			Model:      req.Model,
			Capability: req.Capability.String(),
			Timestamp:  time.Now(),
			Duration:   duration,
			Error:      err,
			ErrorType:  httpErr.Type,
			StatusCode: httpErr.StatusCode,
			Retryable:  httpErr.Retryable,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordError("gemini", req.Model, httpErr.Type)
	}
}

// errorMessage pulls the human-readable message out of a Gemini error
// body, falling back to the raw body when the shape is unexpected.
func errorMessage(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return string(body)
}

// promptText concatenates the textual prompt content, skipping inline
// media. Feeds the request log's size and token estimate fields.
func promptText(req domain.GenerationRequest) string {
	var sb strings.Builder
	sb.WriteString(req.SystemInstruction)
	for _, turn := range req.Turns {
		for _, part := range turn.Parts {
			if tp, ok := part.(domain.TextPart); ok {
				sb.WriteString(tp.Text)
			}
		}
	}
	return sb.String()
}
