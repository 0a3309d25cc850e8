package audio

// Quality thresholds for export encoding.
const (
	// HighQualityThreshold is the export quality at or above which
	// 24-bit PCM is written instead of 16-bit.
	HighQualityThreshold = 0.8
)

// Common error values.
var (
	ErrInvalidBuffer     = Error("invalid buffer")
	ErrInvalidRegion     = Error("invalid region")
	ErrInvalidParameters = Error("invalid parameters")
	ErrUnsupportedFormat = Error("unsupported audio format")
	ErrNoSelection       = Error("no selection")
	ErrSampleNotFound    = Error("sample not found")
	ErrSampleInUse       = Error("sample is referenced by a track")
	ErrTrackNotFound     = Error("track not found")
	ErrDeviceNotFound    = Error("device not found")
	ErrNotPlaying        = Error("not playing")
	ErrRenderFailed      = Error("render failed")
)

// Error type for common errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
