// Package audio decodes the base64-encoded PCM payloads returned by the
// speech synthesis boundary into playable waveform buffers.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// Default output format of the Gemini TTS models: 24kHz mono PCM16.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

// Buffer holds decoded speech audio: one normalized float sequence per
// channel, every sample in [-1, 1]. A Buffer is owned exclusively by
// the call site that decoded it and is discarded after playback.
type Buffer struct {
	SampleRate int
	Channels   int
	Frames     [][]float32 // Frames[channel][frame]
}

// FrameCount returns the number of frames per channel.
func (b *Buffer) FrameCount() int {
	if len(b.Frames) == 0 {
		return 0
	}
	return len(b.Frames[0])
}

// Duration returns the playback length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// DecodeBase64 decodes a standard base64 string into raw bytes.
// Payloads sometimes arrive as data URIs (data:audio/pcm;base64,....)
// or without padding; both are tolerated. Genuinely malformed input
// (non-alphabet characters) returns an error.
func DecodeBase64(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if idx := strings.Index(s, "base64,"); idx >= 0 {
		s = s[idx+len("base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	// Retry without padding requirements.
	data, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if rawErr != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// DecodePCM16 interprets data as little-endian signed 16-bit PCM
// interleaved by channel and produces one normalized float sequence
// per channel. A trailing partial frame is dropped rather than
// rejected: generation can truncate audio mid-stream, and a slightly
// short clip beats a hard failure.
func DecodePCM16(data []byte, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}

	bytesPerFrame := 2 * channels
	frameCount := len(data) / bytesPerFrame

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Frames:     make([][]float32, channels),
	}
	for ch := range buf.Frames {
		buf.Frames[ch] = make([]float32, frameCount)
	}

	for i := 0; i < frameCount; i++ {
		base := i * bytesPerFrame
		for ch := 0; ch < channels; ch++ {
			sample := int16(binary.LittleEndian.Uint16(data[base+2*ch:]))
			buf.Frames[ch][i] = float32(sample) / 32768.0
		}
	}
	return buf, nil
}
