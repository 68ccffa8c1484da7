package contracts

// Ticks is a position on the shared musical clock, measured in clock ticks
// from the moment the transport started.
type Ticks int64

// TicksPerBeat is the tick resolution of the musical clock, following the
// common MIDI pulses-per-quarter-note convention.
const TicksPerBeat Ticks = 480

// Beats converts a whole number of beats to ticks.
func Beats(n int) Ticks {
	return Ticks(n) * TicksPerBeat
}

// Clock is the shared musical time source against which notes are scheduled.
// Implementations must be safe for concurrent use.
type Clock interface {
	// Now returns the current position of the transport.
	Now() Ticks
	// ScheduleOnce registers a one-shot callback fired when the transport
	// reaches the given position. Callbacks registered for a position in the
	// past fire immediately. There is no way to cancel a registered callback.
	ScheduleOnce(at Ticks, fn func())
}
