package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/rinald/sampler/internal/audio"
)

// MP3Decoder decodes MPEG-1 Layer III files.
type MP3Decoder struct{}

// CanDecode reports whether the data starts with an ID3 tag or an MPEG
// frame sync word.
func (d *MP3Decoder) CanDecode(data []byte) bool {
	if len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")) {
		return true
	}
	// Frame sync: 11 set bits
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

// Decode decodes an MP3 file into a buffer. go-mp3 always produces
// 16-bit little-endian stereo output regardless of the source layout.
func (d *MP3Decoder) Decode(data []byte) (*audio.Buffer, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create MP3 decoder: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading MP3 data: %w", err)
	}

	samples := make([]float32, len(pcm)/2)
	for i := 0; i+2 <= len(pcm); i += 2 {
		samples[i/2] = float32(int16(binary.LittleEndian.Uint16(pcm[i:]))) / 32768.0
	}

	channels := deinterleave(samples, 2)
	return audio.NewBuffer(channels, decoder.SampleRate())
}
