// Package transport provides a wall-clock driven implementation of the
// musical clock the core schedules notes against.
package transport

import (
	"sync"
	"time"

	"github.com/leandrodaf/piano/sdk/contracts"
)

// DefaultBPM is used when a transport is created with a non-positive tempo.
const DefaultBPM = 120

// Transport is a start/stoppable musical clock deriving its tick position
// from elapsed wall-clock time at a fixed tempo. Stopping freezes the
// position; starting again resumes from it.
type Transport struct {
	bpm float64

	mu           sync.Mutex
	running      bool
	runningSince time.Time
	accumulated  time.Duration
}

// New creates a stopped transport at the given tempo in beats per minute.
func New(bpm float64) *Transport {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return &Transport{bpm: bpm}
}

// Start begins or resumes the transport. Idempotent.
func (t *Transport) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.runningSince = time.Now()
}

// Stop freezes the transport position. Idempotent. Callbacks already
// registered with ScheduleOnce still fire on wall-clock time.
func (t *Transport) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.accumulated += time.Since(t.runningSince)
	t.running = false
}

// Now returns the current transport position.
func (t *Transport) Now() contracts.Ticks {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticksAt(t.elapsedLocked())
}

// ScheduleOnce fires fn when the transport reaches the given position.
// Positions at or before the current one fire immediately.
func (t *Transport) ScheduleOnce(at contracts.Ticks, fn func()) {
	delta := at - t.Now()
	if delta <= 0 {
		go fn()
		return
	}
	time.AfterFunc(t.TickDuration()*time.Duration(delta), fn)
}

// TickDuration returns the wall-clock duration of one tick at the configured
// tempo.
func (t *Transport) TickDuration() time.Duration {
	beat := time.Duration(float64(time.Minute) / t.bpm)
	return beat / time.Duration(contracts.TicksPerBeat)
}

func (t *Transport) elapsedLocked() time.Duration {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + time.Since(t.runningSince)
}

func (t *Transport) ticksAt(elapsed time.Duration) contracts.Ticks {
	beats := elapsed.Seconds() * t.bpm / 60
	return contracts.Ticks(beats * float64(contracts.TicksPerBeat))
}
