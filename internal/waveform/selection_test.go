package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinald/sampler/internal/audio"
)

func TestSelectionModel_DragCommitsRegion(t *testing.T) {
	m := NewSelectionModel(4.0)

	m.BeginDrag(1.0)
	m.DragTo(2.5)

	live, dragging := m.Live()
	assert.True(t, dragging)
	assert.Equal(t, Selection{Start: 1.0, End: 2.5}, live)
	_, ok := m.Committed()
	assert.False(t, ok, "nothing committed until the drag ends")

	m.EndDrag(3.0)
	sel, ok := m.Committed()
	require.True(t, ok)
	assert.Equal(t, Selection{Start: 1.0, End: 3.0}, sel)
	assert.False(t, m.Dragging())
}

func TestSelectionModel_LeftwardDragNormalized(t *testing.T) {
	m := NewSelectionModel(4.0)

	m.BeginDrag(3.0)
	m.DragTo(1.0)
	m.EndDrag(1.0)

	sel, ok := m.Committed()
	require.True(t, ok)
	assert.Equal(t, Selection{Start: 1.0, End: 3.0}, sel)
}

func TestSelectionModel_ClickDoesNotCreateSelection(t *testing.T) {
	m := NewSelectionModel(4.0)

	m.BeginDrag(2.0)
	m.EndDrag(2.0)

	_, ok := m.Committed()
	assert.False(t, ok, "a zero-extent drag must not persist a selection")
}

func TestSelectionModel_ClickClearsPriorSelection(t *testing.T) {
	m := NewSelectionModel(4.0)
	m.BeginDrag(1.0)
	m.EndDrag(2.0)
	_, ok := m.Committed()
	require.True(t, ok)

	m.BeginDrag(3.0)
	m.EndDrag(3.0)
	_, ok = m.Committed()
	assert.False(t, ok)
}

func TestSelectionModel_DragClampedToSampleBounds(t *testing.T) {
	m := NewSelectionModel(2.0)

	m.BeginDrag(-1.0)
	m.EndDrag(5.0)

	sel, ok := m.Committed()
	require.True(t, ok)
	assert.Equal(t, Selection{Start: 0.0, End: 2.0}, sel)
}

func TestSelectionModel_ExtractCopiesRegion(t *testing.T) {
	samples := make([]float32, 8000)
	for i := range samples {
		samples[i] = float32(i)
	}
	buf, err := audio.NewBuffer([][]float32{samples}, 8000)
	require.NoError(t, err)

	m := NewSelectionModel(buf.Duration())
	m.BeginDrag(0.25)
	m.EndDrag(0.75)

	region, err := m.Extract(buf)
	require.NoError(t, err)
	assert.Equal(t, 4000, region.Frames())
	assert.Equal(t, float32(2000), region.Channel(0)[0])
}

func TestSelectionModel_ExtractWithoutSelection(t *testing.T) {
	buf, err := audio.NewEmptyBuffer(1, 100, 8000)
	require.NoError(t, err)

	m := NewSelectionModel(buf.Duration())
	_, err = m.Extract(buf)
	assert.ErrorIs(t, err, audio.ErrNoSelection)

	m.BeginDrag(0)
	m.EndDrag(0.01)
	m.Clear()
	_, err = m.Extract(buf)
	assert.ErrorIs(t, err, audio.ErrNoSelection)
}

func TestSelectionModel_PreviewRegionPolicies(t *testing.T) {
	m := NewSelectionModel(4.0)
	m.BeginDrag(1.0)
	m.EndDrag(2.0)

	full := Selection{Start: 0, End: 4.0}
	sel := Selection{Start: 1.0, End: 2.0}

	assert.Equal(t, full, m.PreviewRegion(PlaybackPolicy{}))
	assert.Equal(t, sel, m.PreviewRegion(PlaybackPolicy{RespectSelection: true}))
	// Repeat alone never narrows the region.
	assert.Equal(t, full, m.PreviewRegion(PlaybackPolicy{RepeatSelection: true}))

	m.Clear()
	assert.Equal(t, full, m.PreviewRegion(PlaybackPolicy{RespectSelection: true}))
}
