// Package tts talks to the speech-synthesis service.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	llmhttp "github.com/krishiai/krishi-gateway/internal/adapter/llm/http"
)

// MaxSpeechChars caps how much text is sent for synthesis. Longer
// advisory texts are cut at this boundary; speech past it adds cost
// without adding comprehension.
const MaxSpeechChars = 1000

const defaultTimeout = 60 * time.Second

// SynthesisRequest is the outbound payload.
type SynthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
}

// SynthesisResponse is the service's reply. Audio is base64-encoded
// raw PCM (16-bit little-endian, 24kHz mono).
type SynthesisResponse struct {
	Success bool   `json:"success"`
	Audio   string `json:"audio"`
	Error   string `json:"error,omitempty"`
}

// Client posts text to the synthesis service.
type Client struct {
	baseURL string
	voice   string
	client  *http.Client

	logger llmhttp.Logger
}

// NewClient creates a synthesis client for the given service URL.
func NewClient(baseURL, voice string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		voice:   voice,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// SetLogger sets the logger for this client.
func (c *Client) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// Synthesize converts text to speech and returns the base64 PCM audio.
// Markdown markers are stripped first: the voice should not read out
// asterisks and heading hashes.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	cleaned := SanitizeForSpeech(text)
	if cleaned == "" {
		return "", fmt.Errorf("tts: nothing to synthesize")
	}

	payload, err := json.Marshal(SynthesisRequest{Text: cleaned, Voice: c.voice})
	if err != nil {
		return "", fmt.Errorf("tts: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("tts: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("tts: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", llmhttp.Classify("tts", resp.StatusCode, llmhttp.SafeLogResponse(string(body)))
	}

	var synthResp SynthesisResponse
	if err := json.Unmarshal(body, &synthResp); err != nil {
		return "", fmt.Errorf("tts: parse response: %w", err)
	}

	if !synthResp.Success {
		msg := synthResp.Error
		if msg == "" {
			msg = "synthesis failed"
		}
		return "", fmt.Errorf("tts: %s", msg)
	}
	if synthResp.Audio == "" {
		return "", fmt.Errorf("tts: service returned success with no audio")
	}

	if c.logger != nil {
		c.logger.LogInfo(ctx, "speech synthesized", map[string]interface{}{
			"chars":       len(cleaned),
			"audio_bytes": len(synthResp.Audio),
		})
	}

	return synthResp.Audio, nil
}

var markdownMarkers = strings.NewReplacer("*", "", "#", "", "_", "", "~", "")

// SanitizeForSpeech strips markdown emphasis markers and truncates to
// MaxSpeechChars. Truncation happens on the rune boundary so multi-byte
// Bengali text never gets cut mid-character.
func SanitizeForSpeech(text string) string {
	cleaned := strings.TrimSpace(markdownMarkers.Replace(text))

	runes := []rune(cleaned)
	if len(runes) > MaxSpeechChars {
		cleaned = string(runes[:MaxSpeechChars])
	}
	return cleaned
}
