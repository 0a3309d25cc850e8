package playback

import (
	"runtime"

	"github.com/tphakala/malgo"
)

// DefaultBackend returns the preferred miniaudio backend for the
// current platform.
func DefaultBackend() malgo.Backend {
	switch runtime.GOOS {
	case "linux":
		return malgo.BackendAlsa
	case "windows":
		return malgo.BackendWasapi
	case "darwin":
		return malgo.BackendCoreaudio
	default:
		return malgo.BackendNull
	}
}

// DefaultBackends returns the backend list to initialize the audio
// context with: the platform default, with miniaudio free to fall back.
func DefaultBackends() []malgo.Backend {
	return []malgo.Backend{DefaultBackend()}
}
