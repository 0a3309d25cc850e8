// Package waveform turns sample buffers into min/max-decimated peak
// columns for display, and maintains the zoom/pan viewport and drag
// selection that share the buffer's time domain.
package waveform

import "math"

// Viewport maps between time and pixel coordinates under zoom and pan.
// zoom >= 1 narrows the visible window; center is the fraction of the
// total duration the window is centered on.
type Viewport struct {
	duration float64
	zoom     float64
	center   float64
}

// NewViewport creates a viewport over the given duration, fully zoomed
// out.
func NewViewport(duration float64) *Viewport {
	return &Viewport{
		duration: math.Max(0, duration),
		zoom:     1,
		center:   0.5,
	}
}

// Duration returns the total duration covered.
func (v *Viewport) Duration() float64 { return v.duration }

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Center returns the current pan center as a fraction of the duration.
func (v *Viewport) Center() float64 { return v.center }

// SetZoom sets the zoom level, clamped to >= 1.
func (v *Viewport) SetZoom(zoom float64) {
	if zoom < 1 {
		zoom = 1
	}
	v.zoom = zoom
}

// SetCenter sets the pan center, clamped to [0, 1].
func (v *Viewport) SetCenter(center float64) {
	v.center = math.Min(1, math.Max(0, center))
}

// Window returns the visible time interval [start, end].
func (v *Viewport) Window() (start, end float64) {
	visible := v.duration / v.zoom
	start = v.center*v.duration - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > v.duration {
		end = v.duration
	}
	return start, end
}

// TimeToX maps a time to a pixel x coordinate for the given width.
func (v *Viewport) TimeToX(t float64, width int) float64 {
	start, end := v.Window()
	if end <= start {
		return 0
	}
	return (t - start) / (end - start) * float64(width)
}

// XToTime maps a pixel x coordinate back to a time. It is the exact
// inverse of TimeToX up to floating-point epsilon, which keeps
// click-to-seek and drag selection stable under zoom.
func (v *Viewport) XToTime(x float64, width int) float64 {
	start, end := v.Window()
	if width <= 0 {
		return start
	}
	return start + x/float64(width)*(end-start)
}
