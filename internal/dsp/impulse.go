// Package dsp implements the signal processing stages applied to
// scheduled sample playback: the feedback delay, the convolution
// reverb with its synthetic impulse response, the playback-rate
// resampler used for pitch shifting, and the per-track effect chain
// that composes them in fixed order.
package dsp

import (
	"math"
	"math/rand"
)

const (
	// irSeconds is the impulse response length.
	irSeconds = 2.0

	// irDecaySeconds is the time constant of the exponential decay.
	irDecaySeconds = 0.5

	// irChannels is the number of independent noise channels, giving a
	// decorrelated stereo tail.
	irChannels = 2
)

// ImpulseResponse is the shared reverb impulse response: exponentially
// decaying white noise, independent per channel. It is generated once
// per engine initialization and read-only afterwards.
type ImpulseResponse struct {
	channels   [][]float32
	sampleRate int
}

// GenerateImpulseResponse synthesizes a 2-second stereo impulse
// response at the given sample rate: sample i of each channel is
// uniform noise in (-1, 1) scaled by exp(-i / (sampleRate * 0.5)).
func GenerateImpulseResponse(sampleRate int) *ImpulseResponse {
	return generateImpulseResponse(sampleRate, rand.Float64)
}

func generateImpulseResponse(sampleRate int, random func() float64) *ImpulseResponse {
	frames := int(irSeconds * float64(sampleRate))
	decay := float64(sampleRate) * irDecaySeconds

	channels := make([][]float32, irChannels)
	for c := range channels {
		channels[c] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			noise := random()*2 - 1
			channels[c][i] = float32(noise * math.Exp(-float64(i)/decay))
		}
	}

	return &ImpulseResponse{channels: channels, sampleRate: sampleRate}
}

// SampleRate returns the sample rate the response was generated for.
func (ir *ImpulseResponse) SampleRate() int {
	return ir.sampleRate
}

// Frames returns the response length in samples per channel.
func (ir *ImpulseResponse) Frames() int {
	return len(ir.channels[0])
}

// Channel returns one channel of the response. The returned slice must
// be treated as read-only; it is shared by every active effect chain.
func (ir *ImpulseResponse) Channel(i int) []float32 {
	return ir.channels[i%len(ir.channels)]
}
