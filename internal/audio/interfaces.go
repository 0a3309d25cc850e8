// Package audio provides the core data types shared by the sampler:
// immutable sample buffers, common errors, and the interfaces through
// which the engine talks to audio devices and UI collaborators.
package audio

import (
	"github.com/tphakala/malgo"
)

// AudioContext represents an audio context for managing audio devices.
type AudioContext interface {
	// Devices returns a list of available devices.
	Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error)

	// InitDevice initializes a new audio device.
	InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (*malgo.Device, error)

	// Uninit uninitializes the context.
	Uninit() error
}

// AudioDevice represents an audio device for playing audio data.
type AudioDevice interface {
	// Start starts audio playback.
	Start() error

	// Stop stops audio playback.
	Stop() error

	// Uninit uninitializes the audio device.
	Uninit() error
}

// Decoder converts encoded file bytes into a Buffer.
type Decoder interface {
	// Decode decodes audio bytes into a buffer.
	Decode(data []byte) (*Buffer, error)

	// CanDecode reports whether the decoder recognizes the data.
	CanDecode(data []byte) bool
}

// FileSaver persists encoded bytes under a filename. The UI layer
// implements this with a download or a filesystem write.
type FileSaver interface {
	// Save persists the given bytes under the given filename.
	Save(filename string, data []byte) error
}

// Notifier is a fire-and-forget sink for user-visible messages.
// Implementations must not block.
type Notifier interface {
	// Info reports an informational message.
	Info(msg string)

	// Warn reports a warning.
	Warn(msg string)

	// Error reports an error.
	Error(msg string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Info(msg string)  {}
func (NopNotifier) Warn(msg string)  {}
func (NopNotifier) Error(msg string) {}
