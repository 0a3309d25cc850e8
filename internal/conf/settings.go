// Package conf holds runtime configuration for the sampler, loaded from
// environment variables with sane defaults.
package conf

import (
	"os"
	"strconv"
	"time"
)

// Settings holds all runtime configuration.
type Settings struct {
	Debug bool

	// Engine
	SampleRate    int           // output sample rate in Hz
	PollInterval  time.Duration // transport progress poll period
	RenderAhead   time.Duration // how much audio the live renderer keeps buffered
	OutputDevice  string        // playback device name; empty selects the default
	ExportQuality float64       // 0..1; >= 0.8 selects 24-bit WAV

	// Export
	NormalizeOnExport bool // peak-normalize the rendered mix before encoding
}

// Load reads configuration from environment variables.
func Load() *Settings {
	return &Settings{
		Debug: envBool("SAMPLER_DEBUG", false),

		SampleRate:    envInt("SAMPLER_SAMPLE_RATE", 44100),
		PollInterval:  time.Duration(envInt("SAMPLER_POLL_MS", 50)) * time.Millisecond,
		RenderAhead:   time.Duration(envInt("SAMPLER_RENDER_AHEAD_MS", 200)) * time.Millisecond,
		OutputDevice:  envStr("SAMPLER_OUTPUT_DEVICE", ""),
		ExportQuality: envFloat("SAMPLER_EXPORT_QUALITY", 1.0),

		NormalizeOnExport: envBool("SAMPLER_NORMALIZE_EXPORT", false),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
