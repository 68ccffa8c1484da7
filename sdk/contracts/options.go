package contracts

import "time"

// GeometryConfig holds the pixel dimensions used to lay out the keyboard.
// Black key width and height are fixed ratios of these values.
type GeometryConfig struct {
	UnitWidth      float64 // Pixel width of one white key.
	WhiteKeyHeight float64 // Pixel height of one white key.
}

// SchedulerConfig holds the timing parameters of the model-driven scheduler.
type SchedulerConfig struct {
	TickInterval  time.Duration // Wall-clock interval between scheduler ticks.
	LookbackBeats int           // History window handed to the model, in beats.
	BufferBeats   int           // Lookahead buffer for generated notes, in beats.
}

// ClientOptions defines the configuration options for a virtual piano.
type ClientOptions struct {
	Logger    Logger          // Logger for logging events and errors.
	LogLevel  LogLevel        // Level of logging to use.
	Octaves   int             // Number of full octaves the keyboard spans (1-7).
	Geometry  GeometryConfig  // Pixel layout of the keyboard.
	Scheduler SchedulerConfig // Timing of the model-driven scheduling loop.
	Clock     Clock           // Shared musical clock. Defaults to a wall-clock transport.
	Generator NoteGenerator   // External generative model consulted each tick.
	Sink      PlaybackSink    // Receiver of every triggered note.
	Observer  RenderObserver  // Optional repaint notification target.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the piano.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the piano.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithOctaves sets the number of full octaves the keyboard spans.
func WithOctaves(n int) Option {
	return func(opts *ClientOptions) {
		opts.Octaves = n
	}
}

// WithGeometry sets the pixel layout of the keyboard.
func WithGeometry(g GeometryConfig) Option {
	return func(opts *ClientOptions) {
		opts.Geometry = g
	}
}

// WithScheduler sets the timing of the model-driven scheduling loop.
func WithScheduler(s SchedulerConfig) Option {
	return func(opts *ClientOptions) {
		opts.Scheduler = s
	}
}

// WithClock sets the shared musical clock.
func WithClock(c Clock) Option {
	return func(opts *ClientOptions) {
		opts.Clock = c
	}
}

// WithGenerator sets the external generative model.
func WithGenerator(g NoteGenerator) Option {
	return func(opts *ClientOptions) {
		opts.Generator = g
	}
}

// WithSink sets the playback sink receiving triggered notes.
func WithSink(s PlaybackSink) Option {
	return func(opts *ClientOptions) {
		opts.Sink = s
	}
}

// WithObserver sets the repaint notification target.
func WithObserver(o RenderObserver) Option {
	return func(opts *ClientOptions) {
		opts.Observer = o
	}
}
