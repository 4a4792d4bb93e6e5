package audio_test

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/krishiai/krishi-gateway/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcm16Bytes(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestDecodeBase64RoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("hello world"),
		{0x00, 0xff, 0x7f, 0x80, 0x01},
	}

	for _, in := range inputs {
		encoded := base64.StdEncoding.EncodeToString(in)
		got, err := audio.DecodeBase64(encoded)
		require.NoError(t, err)
		if len(in) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, in, got)
		}
	}
}

func TestDecodeBase64DataURIPrefix(t *testing.T) {
	encoded := "data:audio/pcm;base64," + base64.StdEncoding.EncodeToString([]byte("krishi"))
	got, err := audio.DecodeBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte("krishi"), got)
}

func TestDecodeBase64MissingPadding(t *testing.T) {
	// "hi" encodes to "aGk="; drop the padding.
	got, err := audio.DecodeBase64("aGk")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)
}

func TestDecodeBase64Malformed(t *testing.T) {
	_, err := audio.DecodeBase64("!!!not base64!!!")
	assert.Error(t, err)
}

func TestDecodePCM16MonoFrames(t *testing.T) {
	data := pcm16Bytes(0, 16384, -16384, 32767, -32768)

	buf, err := audio.DecodePCM16(data, 24000, 1)
	require.NoError(t, err)

	assert.Equal(t, 24000, buf.SampleRate)
	assert.Equal(t, 1, buf.Channels)
	require.Equal(t, 5, buf.FrameCount())

	assert.InDelta(t, 0.0, buf.Frames[0][0], 1e-6)
	assert.InDelta(t, 0.5, buf.Frames[0][1], 1e-6)
	assert.InDelta(t, -0.5, buf.Frames[0][2], 1e-6)
	assert.InDelta(t, 32767.0/32768.0, buf.Frames[0][3], 1e-6)
	assert.InDelta(t, -1.0, buf.Frames[0][4], 1e-6)
}

func TestDecodePCM16StereoDeinterleave(t *testing.T) {
	// Interleaved L/R pairs: (100, -100), (200, -200).
	data := pcm16Bytes(100, -100, 200, -200)

	buf, err := audio.DecodePCM16(data, 44100, 2)
	require.NoError(t, err)

	require.Equal(t, 2, buf.FrameCount())
	assert.InDelta(t, 100.0/32768.0, buf.Frames[0][0], 1e-6)
	assert.InDelta(t, 200.0/32768.0, buf.Frames[0][1], 1e-6)
	assert.InDelta(t, -100.0/32768.0, buf.Frames[1][0], 1e-6)
	assert.InDelta(t, -200.0/32768.0, buf.Frames[1][1], 1e-6)
}

func TestDecodePCM16SamplesNormalized(t *testing.T) {
	data := pcm16Bytes(-32768, -1, 0, 1, 32767, 12345, -12345, 30000)

	buf, err := audio.DecodePCM16(data, 24000, 2)
	require.NoError(t, err)

	for ch := range buf.Frames {
		for _, s := range buf.Frames[ch] {
			assert.GreaterOrEqual(t, s, float32(-1))
			assert.LessOrEqual(t, s, float32(1))
		}
	}
}

func TestDecodePCM16DropsPartialFrame(t *testing.T) {
	// 2 channels => 4 bytes per frame. 10 bytes = 2 full frames + 2 trailing bytes.
	data := append(pcm16Bytes(1, 2, 3, 4), 0xAB, 0xCD)

	buf, err := audio.DecodePCM16(data, 24000, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.FrameCount())
}

func TestDecodePCM16RejectsBadParams(t *testing.T) {
	_, err := audio.DecodePCM16(nil, 0, 1)
	assert.Error(t, err)

	_, err = audio.DecodePCM16(nil, 24000, 0)
	assert.Error(t, err)
}

func TestBufferDuration(t *testing.T) {
	data := pcm16Bytes(make([]int16, 24000)...)
	buf, err := audio.DecodePCM16(data, 24000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, buf.Duration(), 1e-9)
}

func TestWAVHeader(t *testing.T) {
	buf, err := audio.DecodePCM16(pcm16Bytes(0, 100, -100), 24000, 1)
	require.NoError(t, err)

	wav := buf.WAV()
	require.GreaterOrEqual(t, len(wav), 44)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, "fmt ", string(wav[12:16]))
	assert.Equal(t, "data", string(wav[36:40]))
	// 3 frames * 1 channel * 2 bytes
	assert.Equal(t, 44+6, len(wav))
}
