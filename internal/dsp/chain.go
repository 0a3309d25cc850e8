package dsp

// Stage is one named element of a track's effect chain. Stages process
// stereo blocks in place and run in the fixed order the chain builder
// assembles them in.
type Stage interface {
	Name() string
	Process(left, right []float32)
}

// ChainParams are the per-track effect parameters realized by a chain.
// Pitch is not a stage: it is applied at the source by the RateReader.
type ChainParams struct {
	Volume        float64 // 0..1
	ReverbAmount  float64 // 0..1; 0 disables the reverb stage
	DelayTime     float64 // seconds, 0..1; 0 disables the delay stage
	DelayFeedback float64 // 0..0.9; inert unless DelayTime > 0
}

// Chain is a per-voice effect chain built fresh for every schedule.
// Stage order is fixed: delay, then reverb, then gain. Optional stages
// are simply absent rather than bypassed, so a disabled effect can
// never contribute signal.
type Chain struct {
	stages   []Stage
	stateful bool
}

// NewChain builds the effect chain for the given parameters. blockSize
// must match the block length later passed to Process. The impulse
// response is shared and read-only; it is never mutated per chain.
func NewChain(p ChainParams, ir *ImpulseResponse, sampleRate, blockSize int) *Chain {
	c := &Chain{}

	if p.DelayTime > 0 {
		c.stages = append(c.stages, NewDelayStage(sampleRate, p.DelayTime, p.DelayFeedback))
		c.stateful = true
	}
	if p.ReverbAmount > 0 && ir != nil {
		c.stages = append(c.stages, NewReverbStage(ir, p.ReverbAmount, blockSize))
		c.stateful = true
	}
	c.stages = append(c.stages, NewGainStage(p.Volume))

	return c
}

// Process runs every stage over one stereo block, in place.
func (c *Chain) Process(left, right []float32) {
	for _, s := range c.stages {
		s.Process(left, right)
	}
}

// Stateful reports whether the chain carries time-based state (delay or
// reverb) that keeps producing output after its input goes silent.
func (c *Chain) Stateful() bool {
	return c.stateful
}

// StageNames returns the names of the active stages in order.
func (c *Chain) StageNames() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name()
	}
	return names
}

// GainStage scales the signal by the track volume.
type GainStage struct {
	gain float32
}

// NewGainStage creates a gain stage with volume clamped to [0, 1].
func NewGainStage(volume float64) *GainStage {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &GainStage{gain: float32(volume)}
}

// Name implements Stage.
func (s *GainStage) Name() string { return "gain" }

// Process implements Stage.
func (s *GainStage) Process(left, right []float32) {
	for i := range left {
		left[i] *= s.gain
	}
	for i := range right {
		right[i] *= s.gain
	}
}
