package contracts

import "context"

// Note records that a key was, or will be, sounded at a clock position.
// Notes are immutable once appended to history.
type Note struct {
	KeyIndex int   // Absolute index of the key that was triggered.
	Position Ticks // Clock position at which the note sounds.
}

// NoteGenerator is the external generative model consulted by the scheduler.
// Implementations may block for an unbounded but expected-short duration and
// must honor cancellation through the context.
type NoteGenerator interface {
	// GenerateNotes produces notes to schedule after the window [start, end],
	// given the notes recently played as context. buffer is how far past end
	// the generated notes may reach. A nil slice is a valid "nothing to play"
	// answer.
	GenerateNotes(ctx context.Context, history []Note, start, end, buffer Ticks) ([]Note, error)
}
