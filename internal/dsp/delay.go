package dsp

const (
	// delayMaxSeconds caps the delay line length.
	delayMaxSeconds = 2.0

	// delayMaxFeedback keeps the feedback loop convergent.
	delayMaxFeedback = 0.9

	// Fixed dry/wet mix of the delay stage.
	delayDryMix = 1.0
	delayWetMix = 0.8
)

// delayLine is a single-channel feedback delay: the line output is fed
// back into its own input scaled by the feedback gain.
type delayLine struct {
	buf      []float32
	pos      int
	feedback float32
}

func newDelayLine(lengthFrames int, feedback float64) *delayLine {
	return &delayLine{
		buf:      make([]float32, lengthFrames),
		feedback: float32(feedback),
	}
}

// tick pushes one input sample through the line and returns the mixed
// dry+wet output.
func (d *delayLine) tick(in float32) float32 {
	wet := d.buf[d.pos]
	d.buf[d.pos] = in + wet*d.feedback
	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
	return in*delayDryMix + wet*delayWetMix
}

// DelayStage is the stereo feedback-delay effect. It is only
// constructed for tracks with a positive delay time; a zero delay time
// produces no stage at all, so feedback can never leak into the output.
type DelayStage struct {
	left  *delayLine
	right *delayLine
}

// NewDelayStage creates a stereo feedback delay. delayTime is clamped
// to [0, 2] seconds and feedback to [0, 0.9].
func NewDelayStage(sampleRate int, delayTime, feedback float64) *DelayStage {
	if delayTime > delayMaxSeconds {
		delayTime = delayMaxSeconds
	}
	if feedback < 0 {
		feedback = 0
	}
	if feedback > delayMaxFeedback {
		feedback = delayMaxFeedback
	}

	frames := int(delayTime * float64(sampleRate))
	if frames < 1 {
		frames = 1
	}

	return &DelayStage{
		left:  newDelayLine(frames, feedback),
		right: newDelayLine(frames, feedback),
	}
}

// Name implements Stage.
func (s *DelayStage) Name() string { return "delay" }

// Process runs the delay over one block, in place.
func (s *DelayStage) Process(left, right []float32) {
	for i := range left {
		left[i] = s.left.tick(left[i])
	}
	for i := range right {
		right[i] = s.right.tick(right[i])
	}
}
