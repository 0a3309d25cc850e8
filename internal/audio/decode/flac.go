package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/tphakala/flac"

	"github.com/rinald/sampler/internal/audio"
)

// FLACDecoder decodes FLAC files.
type FLACDecoder struct{}

// CanDecode reports whether the data starts with the fLaC marker.
func (d *FLACDecoder) CanDecode(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[0:4], []byte("fLaC"))
}

// Decode decodes a FLAC file into a buffer.
func (d *FLACDecoder) Decode(data []byte) (*audio.Buffer, error) {
	decoder, err := flac.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create FLAC decoder: %w", err)
	}

	divisor, err := normDivisor(decoder.BitsPerSample)
	if err != nil {
		return nil, err
	}

	bytesPerSample := decoder.BitsPerSample / 8

	samples := make([]float32, 0, int(decoder.TotalSamples)*decoder.NChannels)
	for {
		frame, err := decoder.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("error reading FLAC frame: %w", err)
		}

		for i := 0; i+bytesPerSample <= len(frame); i += bytesPerSample {
			var sample int32
			switch decoder.BitsPerSample {
			case 16:
				sample = int32(int16(binary.LittleEndian.Uint16(frame[i:])))
			case 24:
				sample = int32(frame[i]) | int32(frame[i+1])<<8 | int32(frame[i+2])<<16
				// Sign extension for 24-bit
				if sample&0x800000 != 0 {
					sample |= -1 << 24
				}
			case 32:
				sample = int32(binary.LittleEndian.Uint32(frame[i:]))
			}
			samples = append(samples, float32(sample)/divisor)
		}
	}

	channels := deinterleave(samples, decoder.NChannels)
	return audio.NewBuffer(channels, decoder.SampleRate)
}
