package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV re-encodes the buffer as a 16-bit PCM RIFF/WAVE file so a CLI or
// downstream player can consume synthesized speech without a custom
// container. Samples are clipped back to [-1, 1] before quantizing.
func (b *Buffer) WAV() []byte {
	frameCount := b.FrameCount()
	dataLen := frameCount * b.Channels * 2

	var out bytes.Buffer
	out.Grow(44 + dataLen)

	out.WriteString("RIFF")
	writeU32(&out, uint32(36+dataLen))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	writeU32(&out, 16)
	writeU16(&out, 1) // PCM
	writeU16(&out, uint16(b.Channels))
	writeU32(&out, uint32(b.SampleRate))
	writeU32(&out, uint32(b.SampleRate*b.Channels*2)) // byte rate
	writeU16(&out, uint16(b.Channels*2))              // block align
	writeU16(&out, 16)                                // bits per sample

	out.WriteString("data")
	writeU32(&out, uint32(dataLen))
	for i := 0; i < frameCount; i++ {
		for ch := 0; ch < b.Channels; ch++ {
			s := float64(b.Frames[ch][i])
			s = math.Max(-1, math.Min(1, s))
			writeU16(&out, uint16(int16(s*32767)))
		}
	}
	return out.Bytes()
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}
