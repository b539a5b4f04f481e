package session

import (
	"sync"
	"time"

	"github.com/maahirlabs/tutor-core/core/audio"
)

const (
	silenceThreshold = 0.01
	silenceDuration  = 2500 * time.Millisecond
)

// silenceMonitor watches input energy and ends an idle session. A
// timer is armed while the input stays below the threshold and fires
// after the configured duration of uninterrupted quiet.
type silenceMonitor struct {
	mu    sync.Mutex
	timer *time.Timer

	threshold float64
	duration  time.Duration

	onSilence func()
}

func newSilenceMonitor(onSilence func()) *silenceMonitor {
	if onSilence == nil {
		onSilence = func() {}
	}
	return &silenceMonitor{
		threshold: silenceThreshold,
		duration:  silenceDuration,
		onSilence: onSilence,
	}
}

// Observe inspects one input frame. While suppressed (model speaking
// or quiz running) any pending timer is cancelled and no new one is
// armed, regardless of input energy.
func (m *silenceMonitor) Observe(frame []float32, suppressed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if suppressed || audio.RMS(frame) > m.threshold {
		m.cancelLocked()
		return
	}

	if m.timer == nil {
		m.timer = time.AfterFunc(m.duration, m.fire)
	}
}

// Cancel disarms any pending timer. Always called before the monitor
// is superseded and on session stop.
func (m *silenceMonitor) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelLocked()
}

func (m *silenceMonitor) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *silenceMonitor) fire() {
	m.mu.Lock()
	fired := m.timer != nil
	m.timer = nil
	m.mu.Unlock()

	if fired {
		m.onSilence()
	}
}
