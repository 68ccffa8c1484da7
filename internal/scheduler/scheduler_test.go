package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/piano/internal/history"
	"github.com/leandrodaf/piano/internal/logger"
	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

type scheduledCall struct {
	at contracts.Ticks
	fn func()
}

// fakeClock records scheduled callbacks instead of firing them.
type fakeClock struct {
	mu        sync.Mutex
	now       contracts.Ticks
	scheduled []scheduledCall
}

func (c *fakeClock) Now() contracts.Ticks {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) ScheduleOnce(at contracts.Ticks, fn func()) {
	c.mu.Lock()
	c.scheduled = append(c.scheduled, scheduledCall{at: at, fn: fn})
	c.mu.Unlock()
}

func (c *fakeClock) scheduledCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.scheduled)
}

func (c *fakeClock) fireAll() {
	c.mu.Lock()
	calls := c.scheduled
	c.scheduled = nil
	c.mu.Unlock()
	for _, call := range calls {
		call.fn()
	}
}

// blockingGenerator holds every call until released, ignoring context
// cancellation on purpose: it simulates a model response arriving after the
// scheduler was stopped.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	notes   []contracts.Note
}

func newBlockingGenerator(notes ...contracts.Note) *blockingGenerator {
	return &blockingGenerator{
		started: make(chan struct{}, 16),
		release: make(chan struct{}),
		notes:   notes,
	}
}

func (g *blockingGenerator) GenerateNotes(ctx context.Context, history []contracts.Note, start, end, buffer contracts.Ticks) ([]contracts.Note, error) {
	g.started <- struct{}{}
	<-g.release
	return g.notes, nil
}

// stubGenerator answers immediately with fixed notes or a fixed error.
type stubGenerator struct {
	notes []contracts.Note
	err   error

	mu    sync.Mutex
	calls int
}

func (g *stubGenerator) GenerateNotes(ctx context.Context, history []contracts.Note, start, end, buffer contracts.Ticks) ([]contracts.Note, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	return g.notes, g.err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func testConfig() Config {
	return Config{
		Interval: 5 * time.Millisecond,
		Lookback: contracts.Beats(4),
		Buffer:   contracts.Beats(2),
	}
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for: " + msg)
}

func TestStopDuringInFlightCallSchedulesNothing(t *testing.T) {
	clock := &fakeClock{now: 1000}
	gen := newBlockingGenerator(contracts.Note{KeyIndex: 3, Position: 1500})
	s := New(clock, gen, history.NewLog(), func(contracts.Note) {}, testConfig(), logger.NewZapLogger())

	s.Start()
	<-gen.started // model call in flight

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()
	waitFor(t, func() bool { return !s.Running() }, "scheduler to leave Running")

	// The stale response resolves only now, after the stop.
	close(gen.release)
	<-stopped

	assert := assert.New(t)
	assert.Equal(0, clock.scheduledCount())
	_, ticked := s.LastWindowEnd()
	assert.False(ticked)
}

func TestFailingModelKeepsLoopRunning(t *testing.T) {
	clock := &fakeClock{now: 100}
	gen := &stubGenerator{err: errors.New("model unavailable")}
	s := New(clock, gen, history.NewLog(), func(contracts.Note) {}, testConfig(), logger.NewZapLogger())

	s.Start()
	defer s.Stop()
	waitFor(t, func() bool { return gen.callCount() >= 3 }, "several failed ticks")

	assert := assert.New(t)
	assert.True(s.Running())
	assert.Equal(0, clock.scheduledCount())
	_, ticked := s.LastWindowEnd()
	assert.False(ticked)
}

func TestSuccessfulTickSchedulesEveryNote(t *testing.T) {
	clock := &fakeClock{now: 2000}
	notes := []contracts.Note{
		{KeyIndex: 1, Position: 2400},
		{KeyIndex: 2, Position: 2880},
	}
	gen := &stubGenerator{notes: notes}

	var mu sync.Mutex
	var triggered []contracts.Note
	trigger := func(n contracts.Note) {
		mu.Lock()
		triggered = append(triggered, n)
		mu.Unlock()
	}

	s := New(clock, gen, history.NewLog(), trigger, testConfig(), logger.NewZapLogger())
	s.Start()
	waitFor(t, func() bool { return clock.scheduledCount() >= len(notes) }, "notes handed to the clock")
	s.Stop()

	// Notes from a completed tick still fire after Stop.
	clock.fireAll()

	mu.Lock()
	defer mu.Unlock()
	assert := assert.New(t)
	assert.GreaterOrEqual(len(triggered), len(notes))
	assert.Equal(notes[0], triggered[0])
	assert.Equal(notes[1], triggered[1])

	end, ticked := s.LastWindowEnd()
	assert.True(ticked)
	assert.Equal(contracts.Ticks(2000), end)
}

func TestTickWindowClampsToZero(t *testing.T) {
	clock := &fakeClock{now: 10} // well inside the first lookback window
	gen := &recordingGenerator{}

	s := New(clock, gen, history.NewLog(), func(contracts.Note) {}, testConfig(), logger.NewZapLogger())
	s.Start()
	waitFor(t, func() bool { _, ok := gen.firstStart(); return ok }, "first tick")
	s.Stop()

	start, _ := gen.firstStart()
	assert.Equal(t, contracts.Ticks(0), start)
}

type recordingGenerator struct {
	mu     sync.Mutex
	starts []contracts.Ticks
}

func (g *recordingGenerator) GenerateNotes(ctx context.Context, history []contracts.Note, start, end, buffer contracts.Ticks) ([]contracts.Note, error) {
	g.mu.Lock()
	g.starts = append(g.starts, start)
	g.mu.Unlock()
	return nil, nil
}

func (g *recordingGenerator) firstStart() (contracts.Ticks, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.starts) == 0 {
		return 0, false
	}
	return g.starts[0], true
}

func TestStartAndStopAreIdempotent(t *testing.T) {
	clock := &fakeClock{}
	gen := &stubGenerator{}
	s := New(clock, gen, history.NewLog(), func(contracts.Note) {}, testConfig(), logger.NewZapLogger())

	assert := assert.New(t)
	assert.False(s.Running())

	s.Start()
	s.Start()
	assert.True(s.Running())

	s.Stop()
	s.Stop()
	assert.False(s.Running())

	// A stopped scheduler can be started again.
	s.Start()
	assert.True(s.Running())
	s.Stop()
}
