package genmodel

import (
	"context"
	"testing"

	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func TestEmptyHistoryStaysSilent(t *testing.T) {
	gen := NewMarkovGenerator(52, 1)
	notes, err := gen.GenerateNotes(context.Background(), nil, 0, 960, contracts.Beats(2))
	assert := assert.New(t)
	assert.NoError(err)
	assert.Empty(notes)
}

func TestGeneratesWithinBufferWindow(t *testing.T) {
	gen := NewMarkovGenerator(52, 1)
	hist := []contracts.Note{
		{KeyIndex: 10, Position: 0},
		{KeyIndex: 14, Position: 480},
		{KeyIndex: 17, Position: 960},
	}
	end := contracts.Ticks(1920)
	buffer := contracts.Beats(2)

	notes, err := gen.GenerateNotes(context.Background(), hist, 0, end, buffer)
	assert := assert.New(t)
	assert.NoError(err)
	assert.NotEmpty(notes)
	assert.LessOrEqual(len(notes), 4)
	for _, n := range notes {
		assert.Greater(n.Position, end)
		assert.LessOrEqual(n.Position, end+buffer)
		assert.GreaterOrEqual(n.KeyIndex, 0)
		assert.Less(n.KeyIndex, 52)
	}
}

func TestLearnedTransitionsDriveTheWalk(t *testing.T) {
	gen := NewMarkovGenerator(52, 1)
	// Strict alternation: from 5 the only successor ever seen is 9 and vice
	// versa, so the walk is deterministic regardless of the seed.
	var hist []contracts.Note
	for i := 0; i < 8; i++ {
		key := 5
		if i%2 == 1 {
			key = 9
		}
		hist = append(hist, contracts.Note{KeyIndex: key, Position: contracts.Ticks(i) * 240})
	}

	notes, err := gen.GenerateNotes(context.Background(), hist, 0, 2000, contracts.Beats(2))
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(notes, 4)
	// History ends on 9, so the walk goes 5, 9, 5, 9.
	assert.Equal([]int{5, 9, 5, 9}, []int{notes[0].KeyIndex, notes[1].KeyIndex, notes[2].KeyIndex, notes[3].KeyIndex})
}

func TestCanceledContextStopsGeneration(t *testing.T) {
	gen := NewMarkovGenerator(52, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.GenerateNotes(ctx, []contracts.Note{{KeyIndex: 1}}, 0, 960, contracts.Beats(2))
	assert.ErrorIs(t, err, context.Canceled)
}
