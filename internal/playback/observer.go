package playback

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// DefaultRepaintDelay coalesces bursts of triggered keys into one repaint.
const DefaultRepaintDelay = 16 * time.Millisecond

// DebouncedObserver collects triggered keys and calls a repaint function once
// per burst. A rendering surface drains the dirty keys during repaint.
type DebouncedObserver struct {
	repaint   func()
	debounced func(func())

	mu    sync.Mutex
	dirty []contracts.Key
}

// NewDebouncedObserver creates an observer invoking repaint at most once per
// delay window. A non-positive delay falls back to DefaultRepaintDelay.
func NewDebouncedObserver(repaint func(), delay time.Duration) *DebouncedObserver {
	if delay <= 0 {
		delay = DefaultRepaintDelay
	}
	return &DebouncedObserver{
		repaint:   repaint,
		debounced: debounce.New(delay),
	}
}

// KeyTriggered implements contracts.RenderObserver.
func (o *DebouncedObserver) KeyTriggered(key contracts.Key, at contracts.Ticks) {
	o.mu.Lock()
	o.dirty = append(o.dirty, key)
	o.mu.Unlock()
	o.debounced(o.repaint)
}

// DrainDirty returns the keys triggered since the previous drain.
func (o *DebouncedObserver) DrainDirty() []contracts.Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	dirty := o.dirty
	o.dirty = nil
	return dirty
}
