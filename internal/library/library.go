// Package library holds the workstation's mutable state: the sample
// library and the composition's track list. All mutation goes through
// the Store's methods (single-writer update functions over an explicit
// state struct, rather than uncontrolled global mutation), and the
// derived composition duration is recomputed on every change.
package library

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/engine"
)

// Sample is an entry in the sample library: an immutable buffer with a
// user-editable display name.
type Sample struct {
	ID     string
	Name   string
	Buffer *audio.Buffer
}

// Store is the single owner of samples and tracks.
type Store struct {
	mu       sync.RWMutex
	samples  map[string]*Sample
	order    []string
	tracks   []engine.Track
	duration float64
	notifier audio.Notifier
}

// NewStore creates an empty store. Notifications about rejected
// operations go to the notifier; pass nil to discard them.
func NewStore(notifier audio.Notifier) *Store {
	if notifier == nil {
		notifier = audio.NopNotifier{}
	}
	return &Store{
		samples:  make(map[string]*Sample),
		notifier: notifier,
	}
}

// AddSample registers a buffer under a new sample ID.
func (s *Store) AddSample(name string, buf *audio.Buffer) *Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := &Sample{
		ID:     uuid.NewString(),
		Name:   name,
		Buffer: buf,
	}
	s.samples[sample.ID] = sample
	s.order = append(s.order, sample.ID)
	return sample
}

// Sample returns a sample by ID.
func (s *Store) Sample(id string) (*Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sample, ok := s.samples[id]
	return sample, ok
}

// Samples returns all samples in insertion order.
func (s *Store) Samples() []*Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Sample, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.samples[id])
	}
	return out
}

// RenameSample updates a sample's display name.
func (s *Store) RenameSample(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample, ok := s.samples[id]
	if !ok {
		return fmt.Errorf("%w: %s", audio.ErrSampleNotFound, id)
	}
	sample.Name = name
	return nil
}

// RemoveSample deletes a sample from the library. Deletion is rejected
// while any track references the sample; neither list is modified in
// that case.
func (s *Store) RemoveSample(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.samples[id]; !ok {
		return fmt.Errorf("%w: %s", audio.ErrSampleNotFound, id)
	}

	for i := range s.tracks {
		if s.tracks[i].SampleID == id {
			s.notifier.Warn("sample is used by a track and cannot be deleted")
			return fmt.Errorf("%w: %s", audio.ErrSampleInUse, id)
		}
	}

	delete(s.samples, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ClearSamples drops every sample regardless of references. Tracks are
// left in place with dangling sample IDs, which the scheduler skips.
func (s *Store) ClearSamples() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = make(map[string]*Sample)
	s.order = nil
	s.recomputeDurationLocked()
}

// Reset clears both the sample library and the track list.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = make(map[string]*Sample)
	s.order = nil
	s.tracks = nil
	s.duration = 0
}

// Resolve is the engine's sample resolver: it returns the buffer for a
// sample ID, or nil for a dangling reference.
func (s *Store) Resolve(id string) *audio.Buffer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sample, ok := s.samples[id]; ok {
		return sample.Buffer
	}
	return nil
}

// AddTrack appends a track, assigning it a fresh ID and clamping its
// fields. The composition duration is recomputed.
func (s *Store) AddTrack(track engine.Track) engine.Track {
	s.mu.Lock()
	defer s.mu.Unlock()

	track.ID = uuid.NewString()
	track.Normalize()
	s.tracks = append(s.tracks, track)
	s.recomputeDurationLocked()
	return track
}

// UpdateTrack replaces the stored track with the same ID. The
// composition duration is recomputed.
func (s *Store) UpdateTrack(track engine.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tracks {
		if s.tracks[i].ID == track.ID {
			track.Normalize()
			s.tracks[i] = track
			s.recomputeDurationLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", audio.ErrTrackNotFound, track.ID)
}

// RemoveTrack deletes a track by ID. The composition duration is
// recomputed.
func (s *Store) RemoveTrack(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tracks {
		if s.tracks[i].ID == id {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			s.recomputeDurationLocked()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", audio.ErrTrackNotFound, id)
}

// Tracks returns a consistent snapshot of the track list. Order is
// display order only; playback schedules each track independently.
func (s *Store) Tracks() []engine.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]engine.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Duration returns the derived composition duration.
func (s *Store) Duration() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

func (s *Store) recomputeDurationLocked() {
	resolve := func(id string) *audio.Buffer {
		if sample, ok := s.samples[id]; ok {
			return sample.Buffer
		}
		return nil
	}
	s.duration = engine.CompositionDuration(s.tracks, resolve)
}
