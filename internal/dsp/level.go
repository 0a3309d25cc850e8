package dsp

import "math"

// clippingThreshold is the absolute sample value at or above which a
// mix is reported as clipping.
const clippingThreshold = 1.0

// LevelData describes the loudness of a stretch of audio.
type LevelData struct {
	RMS      float64 // root mean square over all channels, 0..~1
	Peak     float64 // largest absolute sample value
	Clipping bool    // any sample at or beyond full scale
}

// MeasureLevel computes RMS, peak and clipping status over per-channel
// sample data.
func MeasureLevel(channels [][]float32) LevelData {
	var (
		sum   float64
		peak  float64
		count int
	)

	for _, ch := range channels {
		for _, s := range ch {
			v := math.Abs(float64(s))
			if v > peak {
				peak = v
			}
			sum += v * v
		}
		count += len(ch)
	}

	if count == 0 {
		return LevelData{}
	}

	return LevelData{
		RMS:      math.Sqrt(sum / float64(count)),
		Peak:     peak,
		Clipping: peak >= clippingThreshold,
	}
}
