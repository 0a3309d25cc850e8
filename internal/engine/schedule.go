package engine

import (
	"github.com/rinald/sampler/internal/audio"
	"github.com/rinald/sampler/internal/dsp"
)

// Event is one time-stamped playback emission: a sample started Delay
// seconds after the schedule origin, Offset seconds into the source,
// played at Rate through the track's effect chain.
type Event struct {
	TrackID string
	Buffer  *audio.Buffer

	// Delay is the output-time delay from the schedule origin at which
	// playback starts. Never negative.
	Delay float64

	// Offset is the position inside the source, in source time, at
	// which playback begins. Non-zero only when the cursor lands inside
	// a repetition.
	Offset float64

	// Rate is the playback rate derived from the track's pitch shift.
	Rate float64

	Params dsp.ChainParams
}

// BuildSchedule computes the playback events for a snapshot of tracks
// given a cursor time. For every repetition of every resolvable track:
//
//   - repetitions ending at or before the cursor are skipped,
//   - repetitions starting at or after the cursor start after a delay
//     of repStart-cursor,
//   - the repetition straddling the cursor starts immediately, offset
//     (cursor-repStart)*rate into the source; the offset is in source
//     time, hence the rate factor.
//
// Events computed with a negative delay from floating-point drift are
// clamped to zero rather than emitted in the past.
func BuildSchedule(tracks []Track, resolve SampleResolver, cursor float64) []Event {
	var events []Event

	for i := range tracks {
		t := &tracks[i]
		buf := resolve(t.SampleID)
		if buf == nil {
			continue
		}

		rate := PitchRate(t.PitchSemitones)
		repDuration := repetitionDuration(buf, t.PitchSemitones)
		params := t.chainParams()

		for rep := 0; rep < t.Repetitions; rep++ {
			repStart := t.StartTime + float64(rep)*repDuration
			repEnd := repStart + repDuration

			if repEnd <= cursor {
				continue
			}

			ev := Event{
				TrackID: t.ID,
				Buffer:  buf,
				Rate:    rate,
				Params:  params,
			}

			if repStart >= cursor {
				ev.Delay = repStart - cursor
				if ev.Delay < 0 {
					ev.Delay = 0
				}
			} else {
				ev.Delay = 0
				ev.Offset = (cursor - repStart) * rate
			}

			events = append(events, ev)
		}
	}

	return events
}
