package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rinald/sampler/internal/audio"
)

func rampBuffer(t *testing.T, frames, rate int) *audio.Buffer {
	t.Helper()
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(i) / float32(frames)
	}
	buf, err := audio.NewBuffer([][]float32{samples}, rate)
	require.NoError(t, err)
	return buf
}

func TestPeaks_MinMaxPerColumn(t *testing.T) {
	// 8 samples over 4 columns: each column covers exactly 2 samples.
	samples := []float32{0.1, -0.5, 0.9, 0.2, -0.3, -0.8, 0.4, 0.6}
	buf, err := audio.NewBuffer([][]float32{samples}, 8)
	require.NoError(t, err)

	columns := Peaks(buf, NewViewport(buf.Duration()), 4)
	require.Len(t, columns, 4)

	assert.Equal(t, Column{Min: -0.5, Max: 0.1}, columns[0])
	assert.Equal(t, Column{Min: 0.2, Max: 0.9}, columns[1])
	assert.Equal(t, Column{Min: -0.8, Max: -0.3}, columns[2])
	assert.Equal(t, Column{Min: 0.4, Max: 0.6}, columns[3])
}

func TestPeaks_ZoomedWindowOnlyCoversVisibleAudio(t *testing.T) {
	buf := rampBuffer(t, 1000, 1000)
	v := NewViewport(buf.Duration())
	v.SetZoom(2)
	v.SetCenter(0.75) // window [0.5, 1.0): samples 500..999

	columns := Peaks(buf, v, 10)
	require.Len(t, columns, 10)

	assert.GreaterOrEqual(t, columns[0].Min, float32(0.5))
	assert.Less(t, columns[9].Max, float32(1.0))
	// Columns remain monotone along the ramp.
	for x := 1; x < 10; x++ {
		assert.Greater(t, columns[x].Min, columns[x-1].Min, "column %d", x)
	}
}

func TestPeaks_ColumnsPastAudioEndAreZero(t *testing.T) {
	samples := []float32{0.5, 0.5}
	buf, err := audio.NewBuffer([][]float32{samples}, 8)
	require.NoError(t, err)

	// Viewport covers 1s of a buffer holding 0.25s of audio.
	columns := Peaks(buf, NewViewport(1.0), 8)
	require.Len(t, columns, 8)

	assert.Equal(t, Column{Min: 0.5, Max: 0.5}, columns[0])
	for x := 2; x < 8; x++ {
		assert.Equal(t, Column{}, columns[x], "column %d", x)
	}
}

func TestPeaks_MoreColumnsThanSamples(t *testing.T) {
	samples := []float32{-0.5, 0.5}
	buf, err := audio.NewBuffer([][]float32{samples}, 2)
	require.NoError(t, err)

	columns := Peaks(buf, NewViewport(buf.Duration()), 8)
	require.Len(t, columns, 8)
	for _, c := range columns {
		assert.LessOrEqual(t, c.Min, c.Max)
	}
}

func TestRender_MapsSampleRangeToPixelRange(t *testing.T) {
	columns := []Column{
		{Min: -1, Max: 1},
		{Min: 0, Max: 0},
		{Min: -0.5, Max: 0.5},
	}

	segments := Render(columns, 200)
	require.Len(t, segments, 3)

	assert.Equal(t, Segment{X: 0, Y0: 0, Y1: 200}, segments[0])
	assert.Equal(t, Segment{X: 1, Y0: 100, Y1: 100}, segments[1])
	assert.Equal(t, Segment{X: 2, Y0: 50, Y1: 150}, segments[2])
}
