// Package encode serializes sample buffers into audio file formats.
// WAV output is the only bit-exact target; MP3 and FLAC export are
// labeled fallbacks handled one level up, in the exporter.
package encode

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/rinald/sampler/internal/audio"
)

const wavHeaderSize = 44

// BitDepthForQuality maps an export quality in [0, 1] to a PCM bit
// depth. Quality at or above the high-quality threshold yields 24-bit.
func BitDepthForQuality(quality float64) int {
	if quality >= audio.HighQualityThreshold {
		return 24
	}
	return 16
}

// WAV encodes the buffer as a RIFF/WAVE PCM file. Samples are clamped
// to [-1, 1], quantized to the bit depth selected by quality, and
// interleaved frame-major.
func WAV(buf *audio.Buffer, quality float64) []byte {
	bitDepth := BitDepthForQuality(quality)
	bytesPerSample := bitDepth / 8
	numChannels := buf.NumChannels()
	frames := buf.Frames()
	dataSize := frames * numChannels * bytesPerSample

	out := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	// RIFF header
	out.WriteString("RIFF")
	writeUint32(out, uint32(36+dataSize))
	out.WriteString("WAVE")

	// fmt subchunk: 16-byte PCM layout
	out.WriteString("fmt ")
	writeUint32(out, 16)
	writeUint16(out, 1) // PCM
	writeUint16(out, uint16(numChannels))
	writeUint32(out, uint32(buf.SampleRate()))
	writeUint32(out, uint32(buf.SampleRate()*numChannels*bytesPerSample))
	writeUint16(out, uint16(numChannels*bytesPerSample))
	writeUint16(out, uint16(bitDepth))

	// data subchunk
	out.WriteString("data")
	writeUint32(out, uint32(dataSize))

	for i := 0; i < frames; i++ {
		for c := 0; c < numChannels; c++ {
			s := clampSample(buf.Channel(c)[i])
			if bitDepth == 24 {
				v := int32(math.Floor(float64(s) * 8388607))
				out.WriteByte(byte(v))
				out.WriteByte(byte(v >> 8))
				out.WriteByte(byte(v >> 16))
			} else {
				v := int16(math.Round(float64(s) * 32767))
				out.WriteByte(byte(v))
				out.WriteByte(byte(uint16(v) >> 8))
			}
		}
	}

	return out.Bytes()
}

func clampSample(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}

func writeUint16(out *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	out.Write(b[:])
}

func writeUint32(out *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	out.Write(b[:])
}
