package engine

import (
	"math"

	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/dsp"
)

// RenderComposition performs a deterministic, non-real-time render of
// the full composition: the same scheduling algorithm as live playback
// with the cursor at zero, collected synchronously into a fresh stereo
// buffer of ceil(compositionDuration * sampleRate) frames.
//
// The caller must pass a consistent snapshot of tracks; rendering does
// not observe later mutations. A fresh impulse response is generated
// for the offline context, matching the once-per-initialization
// lifetime of the live one.
func RenderComposition(tracks []Track, resolve SampleResolver, sampleRate int) (*audio.Buffer, error) {
	if sampleRate <= 0 {
		return nil, audio.ErrInvalidParameters
	}

	duration := CompositionDuration(tracks, resolve)
	frames := int(math.Ceil(duration * float64(sampleRate)))

	out, err := audio.NewEmptyBuffer(2, frames, sampleRate)
	if err != nil {
		return nil, err
	}
	if frames == 0 {
		return out, nil
	}

	events := BuildSchedule(tracks, resolve, 0)
	rs := newSession(events, dsp.GenerateImpulseResponse(sampleRate), sampleRate)

	left := make([]float32, blockFrames)
	right := make([]float32, blockFrames)
	outLeft := out.Channel(0)
	outRight := out.Channel(1)

	for blockStart := 0; blockStart < frames; blockStart += blockFrames {
		rs.renderBlock(left, right, int64(blockStart))

		n := frames - blockStart
		if n > blockFrames {
			n = blockFrames
		}
		copy(outLeft[blockStart:blockStart+n], left[:n])
		copy(outRight[blockStart:blockStart+n], right[:n])
	}

	return out, nil
}
