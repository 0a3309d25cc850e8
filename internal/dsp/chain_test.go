package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testIR() *ImpulseResponse {
	unit := []float32{1, 0, 0, 0}
	return &ImpulseResponse{channels: [][]float32{unit, unit}, sampleRate: 8000}
}

func TestNewChain_StageOrder(t *testing.T) {
	tests := []struct {
		name   string
		params ChainParams
		want   []string
	}{
		{
			name:   "gain only",
			params: ChainParams{Volume: 1},
			want:   []string{"gain"},
		},
		{
			name:   "delay only",
			params: ChainParams{Volume: 1, DelayTime: 0.2},
			want:   []string{"delay", "gain"},
		},
		{
			name:   "reverb only",
			params: ChainParams{Volume: 1, ReverbAmount: 0.5},
			want:   []string{"reverb", "gain"},
		},
		{
			name:   "delay then reverb then gain",
			params: ChainParams{Volume: 1, DelayTime: 0.2, ReverbAmount: 0.5},
			want:   []string{"delay", "reverb", "gain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChain(tt.params, testIR(), 8000, 4)
			assert.Equal(t, tt.want, c.StageNames())
		})
	}
}

func TestNewChain_Stateful(t *testing.T) {
	assert.False(t, NewChain(ChainParams{Volume: 1}, testIR(), 8000, 4).Stateful())
	assert.True(t, NewChain(ChainParams{Volume: 1, DelayTime: 0.1}, testIR(), 8000, 4).Stateful())
	assert.True(t, NewChain(ChainParams{Volume: 1, ReverbAmount: 0.1}, testIR(), 8000, 4).Stateful())
}

func TestChain_GainApplied(t *testing.T) {
	c := NewChain(ChainParams{Volume: 0.5}, nil, 8000, 4)

	left := []float32{1, -1, 0.5, 0}
	right := []float32{0.25, 0.25, 0.25, 0.25}
	c.Process(left, right)

	assert.Equal(t, []float32{0.5, -0.5, 0.25, 0}, left)
	assert.Equal(t, []float32{0.125, 0.125, 0.125, 0.125}, right)
}

func TestChain_NoSignalDoubling(t *testing.T) {
	// With both delay and reverb active, a silent input must stay
	// silent: no stage may inject an extra copy of the dry path.
	c := NewChain(ChainParams{Volume: 1, DelayTime: 0.1, ReverbAmount: 0.5}, testIR(), 8000, 8)

	left := make([]float32, 8)
	right := make([]float32, 8)
	c.Process(left, right)

	for i := range left {
		assert.InDelta(t, 0, float64(left[i]), 1e-7)
		assert.InDelta(t, 0, float64(right[i]), 1e-7)
	}
}
