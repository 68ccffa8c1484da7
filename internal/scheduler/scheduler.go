// Package scheduler runs the periodic control loop that asks the external
// generative model for new notes and schedules them on the musical clock.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/leandrodaf/piano/internal/history"
	"github.com/leandrodaf/piano/internal/util"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// Config holds the timing of the loop, resolved from the client options.
type Config struct {
	Interval time.Duration  // Wall-clock time between ticks.
	Lookback contracts.Ticks // History window handed to the model.
	Buffer   contracts.Ticks // Lookahead for generated notes.
}

// Scheduler is a two-state machine, Idle or Running. While Running it ticks at
// a fixed wall-clock interval: it queries recent history, invokes the model
// and, if still Running when the call returns, schedules each generated note
// on the clock. Stopping cancels the loop and any in-flight model call, but
// not notes already handed to the clock.
type Scheduler struct {
	clock   contracts.Clock
	gen     contracts.NoteGenerator
	history *history.Log
	trigger func(contracts.Note)
	cfg     Config
	logger  contracts.Logger

	mu            sync.Mutex
	running       bool
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	lastWindowEnd contracts.Ticks
	ticked        bool
}

// New wires a scheduler to its collaborators. trigger is invoked by the clock
// when a scheduled note fires.
func New(clock contracts.Clock, gen contracts.NoteGenerator, log *history.Log,
	trigger func(contracts.Note), cfg Config, logger contracts.Logger) *Scheduler {
	return &Scheduler{
		clock:   clock,
		gen:     gen,
		history: log,
		trigger: trigger,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start switches the scheduler from Idle to Running and begins the periodic
// tick. No-op when already Running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)
	s.logger.Info("scheduler started")
}

// Stop switches the scheduler to Idle, cancelling the periodic tick and any
// model call in flight. Notes already scheduled on the clock still fire.
// Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// Running reports whether the scheduler is in the Running state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastWindowEnd returns the clock position of the most recent successful tick
// window, and whether any tick has completed yet.
func (s *Scheduler) LastWindowEnd() (contracts.Ticks, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastWindowEnd, s.ticked
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one scheduling round. The model call is the only suspension
// point of the loop; the state re-check after it returns is what keeps a
// stale in-flight response from scheduling notes after Stop.
func (s *Scheduler) tick(ctx context.Context) {
	end := s.clock.Now()
	start := util.Max(0, end-s.cfg.Lookback)
	recent := s.history.Since(start)

	notes, err := s.gen.GenerateNotes(ctx, recent, start, end, s.cfg.Buffer)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("model invocation failed, skipping tick",
				s.logger.Field().Error("error", err),
				s.logger.Field().Int64("windowEnd", int64(end)))
		}
		return
	}

	s.mu.Lock()
	if !s.running || ctx.Err() != nil {
		// Stopped while the model call was in flight: discard the result.
		s.mu.Unlock()
		return
	}
	s.lastWindowEnd = end
	s.ticked = true
	s.mu.Unlock()

	for _, n := range notes {
		note := n
		s.clock.ScheduleOnce(note.Position, func() {
			s.trigger(note)
		})
	}
	if len(notes) > 0 {
		s.logger.Debug("scheduled generated notes",
			s.logger.Field().Int("count", len(notes)),
			s.logger.Field().Int64("windowEnd", int64(end)))
	}
}
