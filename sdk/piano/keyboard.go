package piano

import (
	"io"
	"sync"
	"time"

	"github.com/leandrodaf/piano/internal/genmodel"
	"github.com/leandrodaf/piano/internal/history"
	"github.com/leandrodaf/piano/internal/keys"
	"github.com/leandrodaf/piano/internal/scheduler"
	"github.com/leandrodaf/piano/internal/util"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// keyboard implements contracts.VirtualPiano by composing the key table and
// geometry with the note history and the model-driven scheduler.
type keyboard struct {
	logger   contracts.Logger
	board    *keys.Board
	geom     *keys.Geometry
	history  *history.Log
	sched    *scheduler.Scheduler
	clock    contracts.Clock
	sink     contracts.PlaybackSink
	observer contracts.RenderObserver

	closeOnce sync.Once
	closeErr  error
}

func newKeyboard(options contracts.ClientOptions) (*keyboard, error) {
	board, err := keys.NewBoard(options.Octaves)
	if err != nil {
		return nil, err
	}
	geom, err := keys.NewGeometry(board, options.Geometry)
	if err != nil {
		return nil, err
	}

	generator := options.Generator
	if generator == nil {
		// Self-contained fallback so the scheduler works out of the box.
		generator = genmodel.NewMarkovGenerator(board.TotalKeys(), time.Now().UnixNano())
	}

	kb := &keyboard{
		logger:   options.Logger,
		board:    board,
		geom:     geom,
		history:  history.NewLog(),
		clock:    options.Clock,
		sink:     options.Sink,
		observer: options.Observer,
	}
	kb.sched = scheduler.New(options.Clock, generator, kb.history, kb.scheduledTrigger, scheduler.Config{
		Interval: options.Scheduler.TickInterval,
		Lookback: contracts.Beats(options.Scheduler.LookbackBeats),
		Buffer:   contracts.Beats(options.Scheduler.BufferBeats),
	}, options.Logger)

	options.Logger.Info("virtual piano ready",
		options.Logger.Field().Int("octaves", board.Octaves()),
		options.Logger.Field().Int("whiteKeys", board.WhiteCount()),
		options.Logger.Field().Int("blackKeys", board.BlackCount()))
	return kb, nil
}

// Keys implements contracts.VirtualPiano.
func (k *keyboard) Keys() []contracts.Key {
	return k.board.Keys()
}

// Key implements contracts.VirtualPiano.
func (k *keyboard) Key(index int) (contracts.Key, error) {
	return k.board.Key(index)
}

// KeyAt implements contracts.VirtualPiano.
func (k *keyboard) KeyAt(x, y float64) contracts.Key {
	return k.geom.KeyAt(x, y)
}

// KeyX implements contracts.VirtualPiano.
func (k *keyboard) KeyX(key contracts.Key) float64 {
	return k.geom.KeyX(key)
}

// Trigger implements contracts.VirtualPiano. Direct interaction also arms the
// scheduling loop.
func (k *keyboard) Trigger(keyIndex int, at contracts.Ticks, pointerDown bool) error {
	key, err := k.board.Key(keyIndex)
	if err != nil {
		return err
	}
	k.logger.Debug("key triggered",
		k.logger.Field().String("note", key.Name),
		k.logger.Field().Bool("pointerDown", pointerDown))
	k.sound(key, at)
	k.sched.Start()
	return nil
}

// History implements contracts.VirtualPiano.
func (k *keyboard) History(from contracts.Ticks) []contracts.Note {
	return k.history.Since(from)
}

// Start implements contracts.VirtualPiano.
func (k *keyboard) Start() {
	k.sched.Start()
}

// Stop implements contracts.VirtualPiano.
func (k *keyboard) Stop() {
	k.sched.Stop()
}

// Close implements contracts.VirtualPiano.
func (k *keyboard) Close() error {
	k.closeOnce.Do(func() {
		k.sched.Stop()
		if closer, ok := k.sink.(io.Closer); ok {
			k.closeErr = closer.Close()
		}
	})
	return k.closeErr
}

// scheduledTrigger sounds a note generated by the model. An index outside the
// board is clamped rather than dropped, mirroring the geometry policy for
// noisy coordinates.
func (k *keyboard) scheduledTrigger(note contracts.Note) {
	index := util.Clamp(note.KeyIndex, 0, k.board.TotalKeys()-1)
	if index != note.KeyIndex {
		k.logger.Warn("model produced out-of-range key, clamping",
			k.logger.Field().Int("keyIndex", note.KeyIndex))
	}
	key, err := k.board.Key(index)
	if err != nil {
		return
	}
	k.sound(key, note.Position)
}

// sound is the single trigger path shared by direct interaction and the
// scheduler: append to history, hand to the playback sink, notify rendering.
func (k *keyboard) sound(key contracts.Key, at contracts.Ticks) {
	k.history.Append(contracts.Note{KeyIndex: key.Index, Position: at})
	if err := k.sink.Trigger(key, at); err != nil {
		k.logger.Warn("playback sink rejected note",
			k.logger.Field().String("note", key.Name),
			k.logger.Field().Error("error", err))
	}
	if k.observer != nil {
		k.observer.KeyTriggered(key, at)
	}
}
