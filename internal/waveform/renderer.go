package waveform

import "github.com/rinald/sampler/internal/audio"

// Column is one pixel column of the rendered waveform: the minimum and
// maximum sample values found in the slice of audio the column covers.
type Column struct {
	Min float32
	Max float32
}

// Segment is a vertical line in pixel space, ready to draw.
type Segment struct {
	X  int
	Y0 float64
	Y1 float64
}

// Peaks decimates the visible window of the buffer's first channel into
// one min/max pair per pixel column. Columns past the end of the audio
// are zero.
func Peaks(buf *audio.Buffer, v *Viewport, width int) []Column {
	if width <= 0 {
		return nil
	}

	columns := make([]Column, width)
	samples := buf.Channel(0)
	if len(samples) == 0 {
		return columns
	}

	start, end := v.Window()
	rate := float64(buf.SampleRate())
	startSample := int(start * rate)
	visible := (end - start) * rate

	for x := 0; x < width; x++ {
		lo := startSample + int(float64(x)/float64(width)*visible)
		hi := startSample + int(float64(x+1)/float64(width)*visible)
		if hi <= lo {
			hi = lo + 1
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(samples) {
			hi = len(samples)
		}
		if lo >= hi {
			continue
		}

		min, max := samples[lo], samples[lo]
		for _, s := range samples[lo+1 : hi] {
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
		columns[x] = Column{Min: min, Max: max}
	}
	return columns
}

// Render maps peak columns into drawable vertical segments for a canvas
// of the given height. Sample value 0 lands on the vertical center,
// -1 at the bottom and +1 at the top edge.
func Render(columns []Column, height int) []Segment {
	amp := float64(height) / 2
	segments := make([]Segment, len(columns))
	for x, c := range columns {
		segments[x] = Segment{
			X:  x,
			Y0: (1 + float64(c.Min)) * amp,
			Y1: (1 + float64(c.Max)) * amp,
		}
	}
	return segments
}
