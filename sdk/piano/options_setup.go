package piano

import (
	"time"

	"github.com/leandrodaf/piano/internal/logger"
	"github.com/leandrodaf/piano/internal/playback"
	"github.com/leandrodaf/piano/internal/transport"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// Defaults applied when options are not explicitly provided.
const (
	DefaultOctaves        = 4
	DefaultUnitWidth      = 24
	DefaultWhiteKeyHeight = 120
	DefaultTickInterval   = 2 * time.Second
	DefaultLookbackBeats  = 4
	DefaultBufferBeats    = 2
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly
// provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
func applyDefaultOptions(opts ...contracts.Option) contracts.ClientOptions {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.Octaves == 0 {
		options.Octaves = DefaultOctaves
	}
	if options.Geometry.UnitWidth == 0 {
		options.Geometry.UnitWidth = DefaultUnitWidth
	}
	if options.Geometry.WhiteKeyHeight == 0 {
		options.Geometry.WhiteKeyHeight = DefaultWhiteKeyHeight
	}
	if options.Scheduler.TickInterval == 0 {
		options.Scheduler.TickInterval = DefaultTickInterval
	}
	if options.Scheduler.LookbackBeats == 0 {
		options.Scheduler.LookbackBeats = DefaultLookbackBeats
	}
	if options.Scheduler.BufferBeats == 0 {
		options.Scheduler.BufferBeats = DefaultBufferBeats
	}
	if options.Clock == nil {
		t := transport.New(transport.DefaultBPM)
		t.Start()
		options.Clock = t
	}
	if options.Sink == nil {
		options.Sink = playback.NoopSink{}
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options
}
