package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/engine"
)

func testBuffer(t *testing.T, seconds float64, rate int) *audio.Buffer {
	t.Helper()
	buf, err := audio.NewEmptyBuffer(1, int(seconds*float64(rate)), rate)
	require.NoError(t, err)
	return buf
}

func TestStore_AddAndRenameSample(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("kick", testBuffer(t, 1, 8000))

	assert.NotEmpty(t, sample.ID)

	got, ok := s.Sample(sample.ID)
	require.True(t, ok)
	assert.Equal(t, "kick", got.Name)

	require.NoError(t, s.RenameSample(sample.ID, "kick 2"))
	got, _ = s.Sample(sample.ID)
	assert.Equal(t, "kick 2", got.Name)

	assert.ErrorIs(t, s.RenameSample("nope", "x"), audio.ErrSampleNotFound)
}

func TestStore_RemoveSampleInUseRejected(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("kick", testBuffer(t, 1, 8000))
	s.AddTrack(engine.Track{SampleID: sample.ID, Repetitions: 1, Volume: 1})

	err := s.RemoveSample(sample.ID)
	assert.ErrorIs(t, err, audio.ErrSampleInUse)

	// Both lists unchanged
	assert.Len(t, s.Samples(), 1)
	assert.Len(t, s.Tracks(), 1)
}

func TestStore_RemoveSampleUnreferenced(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("kick", testBuffer(t, 1, 8000))

	require.NoError(t, s.RemoveSample(sample.ID))
	assert.Empty(t, s.Samples())

	assert.ErrorIs(t, s.RemoveSample(sample.ID), audio.ErrSampleNotFound)
}

func TestStore_TrackCRUDRecomputesDuration(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("loop", testBuffer(t, 2, 8000))

	tr := s.AddTrack(engine.Track{SampleID: sample.ID, Repetitions: 1, Volume: 1})
	assert.InDelta(t, 2.0, s.Duration(), 1e-9)

	tr.Repetitions = 3
	require.NoError(t, s.UpdateTrack(tr))
	assert.InDelta(t, 6.0, s.Duration(), 1e-9)

	tr.PitchSemitones = 12
	require.NoError(t, s.UpdateTrack(tr))
	assert.InDelta(t, 3.0, s.Duration(), 1e-9, "pitch up halves effective duration")

	require.NoError(t, s.RemoveTrack(tr.ID))
	assert.Equal(t, 0.0, s.Duration())

	assert.ErrorIs(t, s.UpdateTrack(tr), audio.ErrTrackNotFound)
	assert.ErrorIs(t, s.RemoveTrack(tr.ID), audio.ErrTrackNotFound)
}

func TestStore_AddTrackNormalizesFields(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("loop", testBuffer(t, 1, 8000))

	tr := s.AddTrack(engine.Track{
		SampleID:      sample.ID,
		Repetitions:   0,
		Volume:        2,
		DelayFeedback: 5,
	})

	assert.Equal(t, 1, tr.Repetitions)
	assert.Equal(t, 1.0, tr.Volume)
	assert.Equal(t, 0.9, tr.DelayFeedback)
}

func TestStore_ClearSamplesLeavesDanglingTracks(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("loop", testBuffer(t, 2, 8000))
	s.AddTrack(engine.Track{SampleID: sample.ID, Repetitions: 1, Volume: 1})

	s.ClearSamples()

	assert.Empty(t, s.Samples())
	assert.Len(t, s.Tracks(), 1, "tracks survive a bulk sample reset")
	assert.Equal(t, 0.0, s.Duration(), "dangling references contribute nothing")
	assert.Nil(t, s.Resolve(sample.ID))
}

func TestStore_ResolveSnapshotsForScheduling(t *testing.T) {
	s := NewStore(nil)
	sample := s.AddSample("loop", testBuffer(t, 1, 8000))
	s.AddTrack(engine.Track{SampleID: sample.ID, Repetitions: 2, Volume: 1})

	events := engine.BuildSchedule(s.Tracks(), s.Resolve, 0)
	assert.Len(t, events, 2)
}
