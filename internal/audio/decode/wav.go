package decode

import (
	"bytes"
	"errors"
	"fmt"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/rinald/sampler/internal/audio"
)

// WAVDecoder decodes RIFF/WAVE PCM files.
type WAVDecoder struct{}

// CanDecode reports whether the data looks like a RIFF/WAVE file.
func (d *WAVDecoder) CanDecode(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}

// Decode decodes a WAV file into a buffer.
func (d *WAVDecoder) Decode(data []byte) (*audio.Buffer, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	decoder.ReadInfo()

	if !decoder.IsValidFile() {
		return nil, errors.New("invalid WAV file format")
	}

	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("error reading WAV data: %w", err)
	}

	channels, err := pcmToChannels(pcm, int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}
	return audio.NewBuffer(channels, int(decoder.SampleRate))
}

// pcmToChannels normalizes an interleaved integer PCM buffer to
// per-channel float32 samples in [-1, 1].
func pcmToChannels(pcm *goaudio.IntBuffer, bitDepth int) ([][]float32, error) {
	divisor, err := normDivisor(bitDepth)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, len(pcm.Data))
	for i, s := range pcm.Data {
		samples[i] = float32(s) / divisor
	}
	return deinterleave(samples, pcm.Format.NumChannels), nil
}
