package engine

import (
	"github.com/rinald/sampler/internal/dsp"
)

// blockFrames is the renderer's fixed block length. Effect chains are
// built for this block size; the convolution reverb requires it to stay
// constant for the life of a session.
const blockFrames = 4096

// voice is one scheduled event being rendered. The effect chain is
// private to the voice and built fresh per schedule; only the impulse
// response is shared between voices.
type voice struct {
	startFrame int64
	reader     *dsp.RateReader
	chain      *dsp.Chain

	left  []float32
	right []float32

	silent bool
}

// session renders a set of scheduled events block by block into a
// stereo output. The same session type backs both live playback and
// offline export; only the consumer of the blocks differs.
type session struct {
	voices     []*voice
	sampleRate int
}

func newSession(events []Event, ir *dsp.ImpulseResponse, sampleRate int) *session {
	s := &session{sampleRate: sampleRate}

	for i := range events {
		ev := &events[i]
		s.voices = append(s.voices, &voice{
			startFrame: int64(ev.Delay * float64(sampleRate)),
			reader:     dsp.NewRateReader(ev.Buffer, ev.Rate, ev.Offset),
			chain:      dsp.NewChain(ev.Params, ir, sampleRate, blockFrames),
			left:       make([]float32, blockFrames),
			right:      make([]float32, blockFrames),
		})
	}

	return s
}

// renderBlock mixes all active voices for the block starting at
// blockStart into outLeft/outRight, which must be blockFrames long and
// are overwritten.
func (s *session) renderBlock(outLeft, outRight []float32, blockStart int64) {
	for i := range outLeft {
		outLeft[i] = 0
		outRight[i] = 0
	}

	for _, v := range s.voices {
		if v.silent || v.startFrame >= blockStart+blockFrames {
			continue
		}

		// Zero-lead the first active block so the voice starts at its
		// exact frame; relative timing through the stateful stages is
		// preserved since leading zeros produce zero output.
		lead := 0
		if v.startFrame > blockStart {
			lead = int(v.startFrame - blockStart)
		}
		for i := 0; i < lead; i++ {
			v.left[i] = 0
			v.right[i] = 0
		}
		v.reader.ReadStereo(v.left[lead:], v.right[lead:])

		v.chain.Process(v.left, v.right)

		for i := range outLeft {
			outLeft[i] += v.left[i]
			outRight[i] += v.right[i]
		}

		// A voice with no time-based stages has nothing left to say
		// once its source runs out.
		if v.reader.Done() && !v.chain.Stateful() {
			v.silent = true
		}
	}
}
