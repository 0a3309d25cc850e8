package waveform

import (
	"math"

	"github.com/rinald/sampler/internal/audio"
)

// Selection is a half-open time region [Start, End) within a sample.
type Selection struct {
	Start float64
	End   float64
}

// Duration returns the selection's length in seconds.
func (s Selection) Duration() float64 { return s.End - s.Start }

// SelectionModel tracks an in-progress drag and the committed
// selection. The live selection updates on every pointer move; it only
// becomes the committed selection when the drag ends with a nonzero
// extent, so a plain click never leaves a degenerate selection behind.
type SelectionModel struct {
	duration  float64
	dragging  bool
	anchor    float64
	live      Selection
	committed Selection
	selected  bool
}

// NewSelectionModel creates a model over a sample of the given duration.
func NewSelectionModel(duration float64) *SelectionModel {
	return &SelectionModel{duration: math.Max(0, duration)}
}

func (m *SelectionModel) clamp(t float64) float64 {
	return math.Min(m.duration, math.Max(0, t))
}

// BeginDrag starts a drag at the given time. Any prior committed
// selection stays visible until the drag produces a replacement or the
// pointer is released.
func (m *SelectionModel) BeginDrag(t float64) {
	t = m.clamp(t)
	m.dragging = true
	m.anchor = t
	m.live = Selection{Start: t, End: t}
}

// DragTo extends the live selection toward t. Dragging left of the
// anchor is equivalent to dragging right: the region is always stored
// with Start <= End.
func (m *SelectionModel) DragTo(t float64) {
	if !m.dragging {
		return
	}
	t = m.clamp(t)
	m.live = Selection{
		Start: math.Min(m.anchor, t),
		End:   math.Max(m.anchor, t),
	}
}

// EndDrag finishes the drag at t. A drag with zero extent clears the
// selection instead of committing an empty region.
func (m *SelectionModel) EndDrag(t float64) {
	if !m.dragging {
		return
	}
	m.DragTo(t)
	m.dragging = false

	if m.live.Duration() <= 0 {
		m.selected = false
		m.committed = Selection{}
		return
	}
	m.committed = m.live
	m.selected = true
}

// Dragging reports whether a drag is in progress.
func (m *SelectionModel) Dragging() bool { return m.dragging }

// Live returns the in-progress drag region.
func (m *SelectionModel) Live() (Selection, bool) {
	return m.live, m.dragging
}

// Committed returns the committed selection, if any.
func (m *SelectionModel) Committed() (Selection, bool) {
	return m.committed, m.selected
}

// Clear drops the committed selection.
func (m *SelectionModel) Clear() {
	m.selected = false
	m.committed = Selection{}
}

// Extract copies the committed selection out of the buffer as an
// independent sample.
func (m *SelectionModel) Extract(buf *audio.Buffer) (*audio.Buffer, error) {
	if !m.selected {
		return nil, audio.ErrNoSelection
	}
	return buf.Extract(m.committed.Start, m.committed.End)
}

// PlaybackPolicy controls how a committed selection affects sample
// preview. The flags live outside the selection itself: toggling them
// never changes which region is selected.
type PlaybackPolicy struct {
	// RespectSelection restricts preview playback to the committed
	// region instead of the whole sample.
	RespectSelection bool
	// RepeatSelection loops the previewed region until stopped.
	RepeatSelection bool
}

// PreviewRegion resolves the time region a preview should play for the
// given policy: the committed selection when one exists and is
// respected, otherwise the full sample.
func (m *SelectionModel) PreviewRegion(policy PlaybackPolicy) Selection {
	if policy.RespectSelection && m.selected {
		return m.committed
	}
	return Selection{Start: 0, End: m.duration}
}
