package genmodel

import (
	"context"
	"math/rand"
	"sync"

	"github.com/leandrodaf/piano/internal/util"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// maxNotesPerWindow caps how many notes one tick may generate, so a long
// lookahead buffer never floods the clock.
const maxNotesPerWindow = 4

// MarkovGenerator is a small first-order Markov model over key indices. It
// keeps learning transition counts from the history window of every call and
// answers with a random walk from the most recent note, spread across the
// lookahead buffer. With an empty history it stays silent.
type MarkovGenerator struct {
	keyCount int

	mu          sync.Mutex
	rng         *rand.Rand
	transitions map[int]map[int]float64
}

// NewMarkovGenerator creates a generator for a keyboard with the given number
// of keys. The seed makes the walk reproducible in tests.
func NewMarkovGenerator(keyCount int, seed int64) *MarkovGenerator {
	return &MarkovGenerator{
		keyCount:    keyCount,
		rng:         rand.New(rand.NewSource(seed)),
		transitions: make(map[int]map[int]float64),
	}
}

// GenerateNotes implements contracts.NoteGenerator.
func (m *MarkovGenerator) GenerateNotes(ctx context.Context, notes []contracts.Note, start, end, buffer contracts.Ticks) ([]contracts.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.learn(notes)
	if len(notes) == 0 {
		return nil, nil
	}

	count := maxNotesPerWindow
	step := buffer / contracts.Ticks(count)
	if step <= 0 {
		count, step = 1, buffer
	}

	var res []contracts.Note
	current := notes[len(notes)-1].KeyIndex
	for i := 1; i <= count; i++ {
		current = m.next(current)
		res = append(res, contracts.Note{
			KeyIndex: current,
			Position: end + step*contracts.Ticks(i),
		})
	}
	return res, nil
}

// learn accumulates transition counts from consecutive notes of the window.
func (m *MarkovGenerator) learn(notes []contracts.Note) {
	for i := 1; i < len(notes); i++ {
		from, to := notes[i-1].KeyIndex, notes[i].KeyIndex
		row := m.transitions[from]
		if row == nil {
			row = make(map[int]float64)
			m.transitions[from] = row
		}
		row[to]++
	}
}

// next samples a successor for the key from the transition row, or takes a
// small random step when the key was never seen before.
func (m *MarkovGenerator) next(from int) int {
	row := m.transitions[from]
	if len(row) == 0 {
		return util.Clamp(from+m.rng.Intn(5)-2, 0, m.keyCount-1)
	}

	var total float64
	for _, w := range row {
		total += w
	}
	target := m.rng.Float64() * total
	for to, w := range row {
		target -= w
		if target <= 0 {
			return util.Clamp(to, 0, m.keyCount-1)
		}
	}
	return util.Clamp(from, 0, m.keyCount-1)
}
