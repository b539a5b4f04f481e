package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// playbackScheduler plays decoded speech segments back to back on the
// output device's timeline. Segments arriving faster than real time
// are queued at a monotonically advancing start offset; segments
// arriving slower start immediately. Interruption discards every
// tracked segment and resets the offset so the next segment starts
// right away.
type playbackScheduler struct {
	mu sync.Mutex

	output AudioOutput
	// epoch anchors the playback timeline; offsets are measured
	// against it.
	epoch     time.Time
	nextStart time.Duration

	handles map[uuid.UUID]*playbackHandle

	// onError reports delivery failures; they are fatal to the session.
	onError func(error)
}

type playbackHandle struct {
	deliver *time.Timer
	finish  *time.Timer
}

func newPlaybackScheduler(output AudioOutput, onError func(error)) *playbackScheduler {
	if onError == nil {
		onError = func(error) {}
	}
	return &playbackScheduler{
		output:  output,
		epoch:   time.Now(),
		handles: map[uuid.UUID]*playbackHandle{},
		onError: onError,
	}
}

// Schedule queues one decoded segment for gapless playback. Without a
// configured output client the segment is dropped.
func (p *playbackScheduler) Schedule(segment []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.output == nil {
		return
	}

	duration := p.output.EncodingInfo().Duration(segment)
	now := time.Since(p.epoch)
	start := max(p.nextStart, now)
	p.nextStart = start + duration

	id := uuid.New()
	handle := &playbackHandle{}
	handle.deliver = time.AfterFunc(start-now, func() { p.deliver(id, segment) })
	handle.finish = time.AfterFunc(start+duration-now, func() { p.release(id) })
	p.handles[id] = handle
}

func (p *playbackScheduler) deliver(id uuid.UUID, segment []byte) {
	p.mu.Lock()
	output := p.output
	_, tracked := p.handles[id]
	p.mu.Unlock()

	if !tracked || output == nil {
		return
	}
	if err := output.SendAudio(segment); err != nil {
		p.onError(fmt.Errorf("%w: failed to deliver segment: %v", ErrPlayback, err))
	}
}

func (p *playbackScheduler) release(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.handles, id)
}

// Interrupt stops and discards every tracked segment and rewinds the
// start offset to zero. Stop failures on already finished segments
// are irrelevant since timers are simply disarmed.
func (p *playbackScheduler) Interrupt() {
	p.mu.Lock()
	for id, handle := range p.handles {
		handle.deliver.Stop()
		handle.finish.Stop()
		delete(p.handles, id)
	}
	p.nextStart = 0
	output := p.output
	p.mu.Unlock()

	if output != nil {
		if err := output.ClearBuffer(); err != nil {
			logger.Error("Failed to clear output buffer", "error", err)
		}
	}
}

// Stop is the session-teardown path; it behaves like Interrupt.
func (p *playbackScheduler) Stop() { p.Interrupt() }

func (p *playbackScheduler) tracked() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handles)
}

func (p *playbackScheduler) startOffset() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nextStart
}
