package engine

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/rinald/sampler/internal/conf"
	"github.com/rinald/sampler/internal/dsp"
)

const bytesPerFrame = 8 // stereo float32

// OutputDevice abstracts the live playback device. The engine only
// schedules audio into it; it never blocks on audio I/O. The data
// callback runs on the device's own clock and must fill out with
// interleaved stereo float32 frames.
type OutputDevice interface {
	// Start begins pulling audio through the callback.
	Start(onData func(out []byte, frameCount uint32)) error

	// Stop stops the device.
	Stop() error
}

// playSession is one live playback run: a schedule rendered ahead into
// a ring buffer that the device callback drains. framesPlayed counts
// frames actually consumed by the device, so the derived current time
// follows the device clock.
type playSession struct {
	t0       float64
	duration float64
	tracks   []Track
	resolve  SampleResolver

	ring         *ringbuffer.RingBuffer
	framesPlayed atomic.Int64

	quit     chan struct{}
	quitOnce sync.Once
}

func (ps *playSession) cancel() {
	ps.quitOnce.Do(func() { close(ps.quit) })
}

// Transport is the live playback scheduler. At most one session is
// active at a time: starting playback fully cancels any prior session
// first, and Stop is idempotent and safe to call when nothing is
// playing. Seeking restarts scheduling from the new cursor rather than
// patching the running schedule.
type Transport struct {
	settings *conf.Settings
	device   OutputDevice
	ir       *dsp.ImpulseResponse

	current atomic.Pointer[playSession]

	mu      sync.Mutex
	session *playSession
	cursor  float64
	started bool
}

// NewTransport creates a transport over the given output device. The
// shared impulse response is generated once here and reused, read-only,
// by every session.
func NewTransport(settings *conf.Settings, device OutputDevice) *Transport {
	return &Transport{
		settings: settings,
		device:   device,
		ir:       dsp.GenerateImpulseResponse(settings.SampleRate),
	}
}

// onDeviceData is the device callback: it drains rendered audio from
// the active session's ring buffer and plays silence when idle.
func (t *Transport) onDeviceData(out []byte, frameCount uint32) {
	sess := t.current.Load()
	if sess == nil {
		zeroBytes(out)
		return
	}

	n, _ := sess.ring.Read(out)
	zeroBytes(out[n:])
	sess.framesPlayed.Add(int64(n / bytesPerFrame))
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Play starts playback of the given track snapshot from cursor time.
// Any active session is fully stopped first.
func (t *Transport) Play(tracks []Track, resolve SampleResolver, cursor float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked(false)

	if !t.started {
		if err := t.device.Start(t.onDeviceData); err != nil {
			return err
		}
		t.started = true
	}

	duration := CompositionDuration(tracks, resolve)
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= duration {
		// Nothing left to play from here; leave the cursor at 0.
		t.cursor = 0
		return nil
	}

	snapshot := make([]Track, len(tracks))
	copy(snapshot, tracks)

	ringAhead := int(t.settings.RenderAhead.Seconds() * float64(t.settings.SampleRate))
	if ringAhead < 2*blockFrames {
		ringAhead = 2 * blockFrames
	}

	sess := &playSession{
		t0:       cursor,
		duration: duration,
		tracks:   snapshot,
		resolve:  resolve,
		ring:     ringbuffer.New(ringAhead * bytesPerFrame),
		quit:     make(chan struct{}),
	}

	events := BuildSchedule(snapshot, resolve, cursor)
	rs := newSession(events, t.ir, t.settings.SampleRate)

	t.session = sess
	t.cursor = cursor
	t.current.Store(sess)

	go t.renderLoop(sess, rs)
	go t.pollLoop(sess)

	return nil
}

// renderLoop renders blocks ahead of the device into the session ring
// until the session is cancelled.
func (t *Transport) renderLoop(sess *playSession, rs *session) {
	left := make([]float32, blockFrames)
	right := make([]float32, blockFrames)
	block := make([]byte, blockFrames*bytesPerFrame)

	var blockStart int64
	for {
		select {
		case <-sess.quit:
			return
		default:
		}

		if sess.ring.Free() < len(block) {
			time.Sleep(2 * time.Millisecond)
			continue
		}

		rs.renderBlock(left, right, blockStart)
		for i := 0; i < blockFrames; i++ {
			binary.LittleEndian.PutUint32(block[i*8:], math.Float32bits(left[i]))
			binary.LittleEndian.PutUint32(block[i*8+4:], math.Float32bits(right[i]))
		}
		if _, err := sess.ring.Write(block); err != nil {
			// Lost the race for ring space; retry the same block.
			time.Sleep(2 * time.Millisecond)
			continue
		}
		blockStart += blockFrames
	}
}

// pollLoop periodically derives the current time from frames the
// device has consumed and stops playback, resetting the cursor to
// zero, when the composition end is reached.
func (t *Transport) pollLoop(sess *playSession) {
	ticker := time.NewTicker(t.settings.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.quit:
			return
		case <-ticker.C:
			cur := sess.t0 + float64(sess.framesPlayed.Load())/float64(t.settings.SampleRate)
			if cur >= sess.duration {
				t.mu.Lock()
				if t.session == sess {
					t.stopLocked(true)
				}
				t.mu.Unlock()
				return
			}
		}
	}
}

// Stop cancels the active session, if any. It is idempotent and safe
// to call while nothing is playing. The cursor keeps the position at
// which playback stopped.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked(false)
}

func (t *Transport) stopLocked(resetCursor bool) {
	sess := t.session
	if sess == nil {
		if resetCursor {
			t.cursor = 0
		}
		return
	}

	t.cursor = t.sessionTimeLocked(sess)
	if resetCursor {
		t.cursor = 0
	}

	t.session = nil
	t.current.Store(nil)
	sess.cancel()
}

func (t *Transport) sessionTimeLocked(sess *playSession) float64 {
	cur := sess.t0 + float64(sess.framesPlayed.Load())/float64(t.settings.SampleRate)
	if cur > sess.duration {
		cur = sess.duration
	}
	return cur
}

// Seek moves the playback cursor. While playing, the active schedule
// is stopped and a fresh one is issued from the new cursor; a running
// schedule is never patched in place.
func (t *Transport) Seek(cursor float64) error {
	t.mu.Lock()
	sess := t.session
	t.mu.Unlock()

	if cursor < 0 {
		cursor = 0
	}

	if sess != nil {
		return t.Play(sess.tracks, sess.resolve, cursor)
	}

	t.mu.Lock()
	t.cursor = cursor
	t.mu.Unlock()
	return nil
}

// CurrentTime returns the playback position: the cursor while stopped,
// or the device-clock-derived position while playing.
func (t *Transport) CurrentTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil {
		return t.sessionTimeLocked(t.session)
	}
	return t.cursor
}

// IsPlaying reports whether a session is active.
func (t *Transport) IsPlaying() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil
}

// Close stops playback and the output device.
func (t *Transport) Close() error {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		t.started = false
		return t.device.Stop()
	}
	return nil
}
