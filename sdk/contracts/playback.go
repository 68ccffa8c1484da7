package contracts

// PlaybackSink receives every triggered note, whether triggered directly by
// the user or by the scheduler. Errors are logged by the keyboard and never
// interrupt triggering.
type PlaybackSink interface {
	Trigger(key Key, at Ticks) error
}

// RenderObserver is notified after a key has been triggered so a drawing
// surface can repaint. Optional.
type RenderObserver interface {
	KeyTriggered(key Key, at Ticks)
}
