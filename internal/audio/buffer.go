package audio

import (
	"fmt"
	"math"
)

// Buffer holds decoded audio as per-channel float32 samples in [-1, 1]
// together with the sample rate. A Buffer is immutable once constructed;
// operations that derive new audio (extraction, offline rendering) always
// produce a fresh Buffer instead of mutating in place.
type Buffer struct {
	channels   [][]float32
	sampleRate int
	frames     int
}

// NewBuffer creates a buffer from per-channel sample data. Every channel
// must have the same length and the sample rate must be positive. The
// channel slices are owned by the buffer after this call; callers must
// not modify them.
func NewBuffer(channels [][]float32, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidBuffer, sampleRate)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidBuffer)
	}

	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, expected %d",
				ErrInvalidBuffer, i, len(ch), frames)
		}
	}

	return &Buffer{
		channels:   channels,
		sampleRate: sampleRate,
		frames:     frames,
	}, nil
}

// NewEmptyBuffer creates a zero-filled buffer with the given shape.
func NewEmptyBuffer(numChannels, frames, sampleRate int) (*Buffer, error) {
	if numChannels <= 0 || frames < 0 {
		return nil, fmt.Errorf("%w: %d channels, %d frames", ErrInvalidBuffer, numChannels, frames)
	}

	channels := make([][]float32, numChannels)
	for i := range channels {
		channels[i] = make([]float32, frames)
	}
	return NewBuffer(channels, sampleRate)
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// NumChannels returns the number of channels.
func (b *Buffer) NumChannels() int {
	return len(b.channels)
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	return b.frames
}

// Duration returns the buffer duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.frames) / float64(b.sampleRate)
}

// Channel returns the sample data for one channel. The returned slice is
// backed by the buffer's storage and must be treated as read-only.
func (b *Buffer) Channel(i int) []float32 {
	return b.channels[i]
}

// Extract copies the half-open time interval [start, end) into a new,
// independently-owned buffer. The region is clamped to the buffer's
// duration; frameCount = floor((end-start) * sampleRate).
func (b *Buffer) Extract(start, end float64) (*Buffer, error) {
	if start < 0 {
		start = 0
	}
	if end > b.Duration() {
		end = b.Duration()
	}
	if end < start {
		return nil, fmt.Errorf("%w: [%f, %f)", ErrInvalidRegion, start, end)
	}

	startFrame := int(math.Floor(start * float64(b.sampleRate)))
	frames := int(math.Floor((end - start) * float64(b.sampleRate)))
	if startFrame+frames > b.frames {
		frames = b.frames - startFrame
	}
	if frames < 0 {
		frames = 0
	}

	channels := make([][]float32, len(b.channels))
	for i, ch := range b.channels {
		channels[i] = make([]float32, frames)
		copy(channels[i], ch[startFrame:startFrame+frames])
	}

	return NewBuffer(channels, b.sampleRate)
}
