package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinald/sampler/internal/audio"
)

func silentSample(t *testing.T, seconds float64, rate int) *audio.Buffer {
	t.Helper()
	buf, err := audio.NewEmptyBuffer(1, int(seconds*float64(rate)), rate)
	require.NoError(t, err)
	return buf
}

func resolverFor(buffers map[string]*audio.Buffer) SampleResolver {
	return func(id string) *audio.Buffer {
		return buffers[id]
	}
}

func TestPitchRate(t *testing.T) {
	assert.Equal(t, 1.0, PitchRate(0))
	assert.InDelta(t, 2.0, PitchRate(12), 1e-12)
	assert.InDelta(t, 0.5, PitchRate(-12), 1e-12)

	for k := -12; k <= 12; k++ {
		assert.InDelta(t, math.Pow(2, float64(k)/12), PitchRate(k), 1e-12, "semitones %d", k)
	}
}

func TestCompositionDuration_SingleTrack(t *testing.T) {
	resolve := resolverFor(map[string]*audio.Buffer{
		"s": silentSample(t, 2, 44100),
	})

	tracks := []Track{{ID: "a", SampleID: "s", StartTime: 0, Repetitions: 1, Volume: 1}}
	assert.InDelta(t, 2.0, CompositionDuration(tracks, resolve), 1e-9)
}

func TestCompositionDuration_PitchShiftHalvesDuration(t *testing.T) {
	resolve := resolverFor(map[string]*audio.Buffer{
		"s": silentSample(t, 2, 44100),
	})

	tracks := []Track{{ID: "a", SampleID: "s", Repetitions: 1, Volume: 1, PitchSemitones: 12}}
	assert.InDelta(t, 1.0, CompositionDuration(tracks, resolve), 1e-9)
}

func TestCompositionDuration_TwoTracks(t *testing.T) {
	resolve := resolverFor(map[string]*audio.Buffer{
		"s": silentSample(t, 1, 44100),
	})

	tracks := []Track{
		{ID: "a", SampleID: "s", StartTime: 0, Repetitions: 3, Volume: 1},
		{ID: "b", SampleID: "s", StartTime: 2.5, Repetitions: 1, Volume: 1},
	}
	assert.InDelta(t, 3.5, CompositionDuration(tracks, resolve), 1e-9)
}

func TestCompositionDuration_DanglingReferenceSkipped(t *testing.T) {
	resolve := resolverFor(map[string]*audio.Buffer{
		"s": silentSample(t, 1, 44100),
	})

	tracks := []Track{
		{ID: "a", SampleID: "gone", StartTime: 10, Repetitions: 5, Volume: 1},
		{ID: "b", SampleID: "s", StartTime: 0, Repetitions: 1, Volume: 1},
	}
	assert.InDelta(t, 1.0, CompositionDuration(tracks, resolve), 1e-9)
}

func TestCompositionDuration_MonotonicInRepetitionsAndStart(t *testing.T) {
	resolve := resolverFor(map[string]*audio.Buffer{
		"s": silentSample(t, 1.5, 8000),
	})

	base := Track{ID: "a", SampleID: "s", StartTime: 0.5, Repetitions: 1, Volume: 1}

	prev := 0.0
	for reps := 1; reps <= 8; reps++ {
		tr := base
		tr.Repetitions = reps
		d := CompositionDuration([]Track{tr}, resolve)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}

	prev = 0.0
	for start := 0.0; start <= 4.0; start += 0.25 {
		tr := base
		tr.StartTime = start
		d := CompositionDuration([]Track{tr}, resolve)
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestTrack_Normalize(t *testing.T) {
	tr := Track{
		StartTime:      -1,
		Repetitions:    0,
		Volume:         1.5,
		PitchSemitones: 30,
		ReverbAmount:   -0.2,
		DelayTime:      5,
		DelayFeedback:  1.2,
	}
	tr.Normalize()

	assert.Equal(t, 0.0, tr.StartTime)
	assert.Equal(t, 1, tr.Repetitions)
	assert.Equal(t, 1.0, tr.Volume)
	assert.Equal(t, 12, tr.PitchSemitones)
	assert.Equal(t, 0.0, tr.ReverbAmount)
	assert.Equal(t, 1.0, tr.DelayTime)
	assert.Equal(t, 0.9, tr.DelayFeedback)
}
