package contracts

import "github.com/google/uuid"

// InputSession tracks the pointer state of one input surface dispatching
// events to a keyboard. It is owned by the dispatcher; the core only ever
// sees its PointerDown value as a parameter to Trigger calls.
type InputSession struct {
	ID          uuid.UUID // Identifies the surface across log lines.
	PointerDown bool      // Whether the pointer is currently held down.
}

// NewInputSession creates a session with a fresh identifier.
func NewInputSession() *InputSession {
	return &InputSession{ID: uuid.New()}
}
