// Package engine implements composition playback: it turns a snapshot
// of tracks and a playback cursor into sample-accurate playback events,
// renders them through per-track effect chains, and drives either a
// live output device or an offline render.
package engine

import (
	"math"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/dsp"
)

// Track places a sample on the composition timeline with a start time,
// a repetition count, and per-track effect parameters. The sample
// reference is weak: a track whose sample has been removed is skipped
// at schedule time rather than treated as an error.
type Track struct {
	ID             string
	SampleID       string
	StartTime      float64 // seconds, >= 0
	Repetitions    int     // >= 1
	Volume         float64 // 0..1
	PitchSemitones int     // -12..12
	ReverbAmount   float64 // 0..1
	DelayTime      float64 // seconds, 0..1
	DelayFeedback  float64 // 0..0.9; inert when DelayTime == 0
}

// Normalize clamps all fields into their valid ranges.
func (t *Track) Normalize() {
	t.StartTime = math.Max(0, t.StartTime)
	if t.Repetitions < 1 {
		t.Repetitions = 1
	}
	t.Volume = clamp(t.Volume, 0, 1)
	if t.PitchSemitones < -12 {
		t.PitchSemitones = -12
	}
	if t.PitchSemitones > 12 {
		t.PitchSemitones = 12
	}
	t.ReverbAmount = clamp(t.ReverbAmount, 0, 1)
	t.DelayTime = clamp(t.DelayTime, 0, 1)
	t.DelayFeedback = clamp(t.DelayFeedback, 0, 0.9)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// chainParams maps the track's effect fields onto a chain description.
func (t *Track) chainParams() dsp.ChainParams {
	return dsp.ChainParams{
		Volume:        t.Volume,
		ReverbAmount:  t.ReverbAmount,
		DelayTime:     t.DelayTime,
		DelayFeedback: t.DelayFeedback,
	}
}

// PitchRate converts a semitone shift to a playback rate:
// rate = 2^(semitones/12). Pitch is realized purely as a speed change,
// so shifting pitch also scales duration by 1/rate.
func PitchRate(semitones int) float64 {
	return math.Pow(2, float64(semitones)/12)
}

// SampleResolver maps a sample ID to its buffer. A nil return means the
// reference is dangling and the track is skipped.
type SampleResolver func(sampleID string) *audio.Buffer

// repetitionDuration returns the playback length of one repetition of
// the track's sample in composition time, accounting for pitch rate.
func repetitionDuration(buf *audio.Buffer, semitones int) float64 {
	return buf.Duration() / PitchRate(semitones)
}

// CompositionDuration returns the time at which the last repetition of
// any track finishes. Tracks with dangling sample references contribute
// nothing.
func CompositionDuration(tracks []Track, resolve SampleResolver) float64 {
	var duration float64
	for i := range tracks {
		t := &tracks[i]
		buf := resolve(t.SampleID)
		if buf == nil {
			continue
		}

		end := t.StartTime + repetitionDuration(buf, t.PitchSemitones)*float64(t.Repetitions)
		if end > duration {
			duration = end
		}
	}
	return duration
}
