package dsp

import (
	"github.com/rinald/sampler/internal/audio"
)

// RateReader pulls stereo frames out of a source buffer at a playback
// rate, resampling by linear interpolation. A rate above 1 plays the
// source faster (and higher); this is the sole pitch-shift mechanism,
// so changing pitch necessarily changes duration. Mono sources are
// duplicated to both output channels.
type RateReader struct {
	src  *audio.Buffer
	rate float64
	pos  float64 // read position in source frames
}

// NewRateReader creates a reader positioned offsetSeconds into the
// source, measured in source time.
func NewRateReader(src *audio.Buffer, rate, offsetSeconds float64) *RateReader {
	if rate <= 0 {
		rate = 1
	}
	return &RateReader{
		src:  src,
		rate: rate,
		pos:  offsetSeconds * float64(src.SampleRate()),
	}
}

// Done reports whether the source is exhausted.
func (r *RateReader) Done() bool {
	return r.pos >= float64(r.src.Frames())
}

// ReadStereo fills left and right with up to len(left) resampled
// frames and returns the number produced. The remainder, if any, is
// zero-filled.
func (r *RateReader) ReadStereo(left, right []float32) int {
	leftSrc := r.src.Channel(0)
	rightSrc := leftSrc
	if r.src.NumChannels() > 1 {
		rightSrc = r.src.Channel(1)
	}

	frames := r.src.Frames()
	n := 0
	for ; n < len(left); n++ {
		if r.pos >= float64(frames) {
			break
		}

		idx := int(r.pos)
		frac := float32(r.pos - float64(idx))

		left[n] = interpolate(leftSrc, idx, frac, frames)
		right[n] = interpolate(rightSrc, idx, frac, frames)

		r.pos += r.rate
	}

	for i := n; i < len(left); i++ {
		left[i] = 0
		right[i] = 0
	}

	return n
}

func interpolate(src []float32, idx int, frac float32, frames int) float32 {
	s0 := src[idx]
	s1 := s0
	if idx+1 < frames {
		s1 = src[idx+1]
	}
	return s0 + (s1-s0)*frac
}
