package contracts

import "errors"

// ErrInvalidConfiguration is returned when a keyboard is constructed with an
// octave span outside the supported [1,7] range.
var ErrInvalidConfiguration = errors.New("invalid keyboard configuration")

// VirtualPiano is the public surface of a configured keyboard: the key table,
// the two geometry mappings consumed by rendering and input surfaces, the
// trigger path, and the model-driven scheduler lifecycle.
type VirtualPiano interface {
	// Keys returns every key of the keyboard, ordered by index.
	Keys() []Key
	// Key returns the key at the given absolute index.
	Key(index int) (Key, error)
	// KeyAt maps a pixel coordinate to the key under it. Coordinates outside
	// the drawable bounds are clamped to the nearest valid key.
	KeyAt(x, y float64) Key
	// KeyX returns the x-coordinate of the left edge of the given key.
	KeyX(key Key) float64
	// Trigger sounds the key at the given clock position: the note is appended
	// to history, handed to the playback sink and reported to the render
	// observer. pointerDown reports the dispatching session's pointer state.
	// The first direct trigger starts the scheduler.
	Trigger(keyIndex int, at Ticks, pointerDown bool) error
	// History returns all notes with a position at or after from.
	History(from Ticks) []Note
	// Start switches the scheduler to Running. No-op when already Running.
	Start()
	// Stop switches the scheduler to Idle and cancels any in-flight model
	// call. Notes already handed to the clock still fire. Idempotent.
	Stop()
	// Close stops the scheduler and releases sink resources.
	Close() error
}
