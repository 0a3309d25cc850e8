// Package playback provides audio output device management over
// miniaudio. It adapts malgo's context and device handles behind the
// interfaces the engine consumes, so the transport can be tested
// without audio hardware.
package playback

import (
	"fmt"
	"sync"

	"github.com/tphakala/malgo"

	"github.com/rinald/sampler/internal/audio"
)

// MalgoContextAdapter adapts malgo.AllocatedContext to our AudioContext interface.
type MalgoContextAdapter struct {
	context *malgo.AllocatedContext
	mu      sync.Mutex
}

// NewMalgoContextAdapter creates a new adapter for the malgo context.
func NewMalgoContextAdapter(backends []malgo.Backend, config *malgo.ContextConfig, logger func(string)) (audio.AudioContext, error) {
	ctx, err := malgo.InitContext(backends, *config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	return &MalgoContextAdapter{context: ctx}, nil
}

// Devices implements the AudioContext interface.
func (a *MalgoContextAdapter) Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.context.Devices(deviceType)
}

// InitDevice implements the AudioContext interface.
func (a *MalgoContextAdapter) InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (*malgo.Device, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return malgo.InitDevice(a.context.Context, *config, callbacks)
}

// Uninit implements the AudioContext interface.
func (a *MalgoContextAdapter) Uninit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.context.Uninit()
}
