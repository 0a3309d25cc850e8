// Package decode converts uploaded audio file bytes into sample buffers.
// WAV, FLAC and MP3 are recognized by their magic bytes; everything is
// decoded fully into memory since the workstation edits whole samples.
package decode

import (
	"fmt"

	"github.com/rinald/sampler/internal/audio"
)

// decoders in sniffing order. WAV first since RIFF is the cheapest check.
var decoders = []audio.Decoder{
	&WAVDecoder{},
	&FLACDecoder{},
	&MP3Decoder{},
}

// Decode decodes audio file bytes into a buffer, detecting the format
// from the content. Returns ErrUnsupportedFormat if no decoder
// recognizes the data.
func Decode(data []byte) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", audio.ErrUnsupportedFormat)
	}

	for _, d := range decoders {
		if d.CanDecode(data) {
			buf, err := d.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode audio: %w", err)
			}
			return buf, nil
		}
	}

	return nil, audio.ErrUnsupportedFormat
}

// normDivisor returns the divisor for normalizing integer samples of the
// given bit depth to [-1, 1].
func normDivisor(bitDepth int) (float32, error) {
	switch bitDepth {
	case 8:
		return 128.0, nil
	case 16:
		return 32768.0, nil
	case 24:
		return 8388608.0, nil
	case 32:
		return 2147483648.0, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// deinterleave splits interleaved per-frame samples into per-channel
// slices of equal length, dropping any trailing partial frame.
func deinterleave(samples []float32, numChannels int) [][]float32 {
	frames := len(samples) / numChannels
	channels := make([][]float32, numChannels)
	for c := range channels {
		channels[c] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			channels[c][i] = samples[i*numChannels+c]
		}
	}
	return channels
}
