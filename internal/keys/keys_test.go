package keys

import (
	"errors"
	"fmt"
	"testing"

	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func TestLowestKeyIdentity(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, Octave(0))
	assert.Equal(10, OctaveKeyNum(0))
	assert.Equal(contracts.White, Color(0))
	assert.Equal(0, ColorIndex(0))
}

func TestNoteNames(t *testing.T) {
	cases := map[int]string{
		60: "C4",
		61: "C#4",
		59: "B3",
		57: "A3",
		48: "C3",
		72: "C5",
		33: "A1",
		69: "A4",
	}
	for midi, want := range cases {
		assert.Equal(t, want, NoteName(midi), "midi %d", midi)
	}
}

func TestSpanOneKeyCounts(t *testing.T) {
	b, err := NewBoard(1)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(10, b.WhiteCount())
	assert.Equal(6, b.BlackCount())
	assert.Equal(16, b.TotalKeys())
}

func TestKeyCountFormulaForAllSpans(t *testing.T) {
	for span := 1; span <= 7; span++ {
		t.Run(fmt.Sprintf("span=%d", span), func(t *testing.T) {
			b, err := NewBoard(span)
			assert := assert.New(t)
			assert.NoError(err)
			assert.Equal(7*span+3, b.WhiteCount())
			assert.Equal(5*span+1, b.BlackCount())
		})
	}
}

func TestColorIndexBijection(t *testing.T) {
	for span := 1; span <= 7; span++ {
		t.Run(fmt.Sprintf("span=%d", span), func(t *testing.T) {
			b, err := NewBoard(span)
			assert := assert.New(t)
			assert.NoError(err)

			var nextWhite, nextBlack int
			for _, k := range b.Keys() {
				if k.Color == contracts.White {
					assert.Equal(nextWhite, k.ColorIndex, "key %d", k.Index)
					nextWhite++
				} else {
					assert.Equal(nextBlack, k.ColorIndex, "key %d", k.Index)
					nextBlack++
				}
			}
			assert.Equal(b.WhiteCount(), nextWhite)
			assert.Equal(b.BlackCount(), nextBlack)
		})
	}
}

func TestMIDIAssignmentCentersOnMiddleC(t *testing.T) {
	b, err := NewBoard(4)
	assert := assert.New(t)
	assert.NoError(err)

	// lowestMidi = 60 - floor(4/2)*12 - 3
	first, err := b.Key(0)
	assert.NoError(err)
	assert.Equal(uint8(33), first.MIDINote)
	assert.Equal("A1", first.Name)

	middle, err := b.Key(27)
	assert.NoError(err)
	assert.Equal(uint8(60), middle.MIDINote)
	assert.Equal("C4", middle.Name)
	assert.Equal(1, middle.OctaveKeyNum)
}

func TestBoundaryOctaveKinds(t *testing.T) {
	b, err := NewBoard(1)
	assert := assert.New(t)
	assert.NoError(err)

	for _, k := range b.Keys() {
		switch {
		case k.Index <= 2:
			assert.Equal(contracts.LowBoundaryOctave, k.OctaveKind, "key %d", k.Index)
		case k.Index == 15:
			assert.Equal(contracts.HighBoundaryOctave, k.OctaveKind, "key %d", k.Index)
		default:
			assert.Equal(contracts.RegularOctave, k.OctaveKind, "key %d", k.Index)
		}
	}
}

func TestInvalidSpanFailsConstruction(t *testing.T) {
	for _, span := range []int{-1, 0, 8, 100} {
		_, err := NewBoard(span)
		assert.True(t, errors.Is(err, contracts.ErrInvalidConfiguration), "span %d", span)
	}
}

func TestKeyOutOfRange(t *testing.T) {
	b, err := NewBoard(2)
	assert := assert.New(t)
	assert.NoError(err)

	_, err = b.Key(-1)
	assert.True(errors.Is(err, ErrKeyOutOfRange))
	_, err = b.Key(b.TotalKeys())
	assert.True(errors.Is(err, ErrKeyOutOfRange))
}

func TestIndexOctaveKeyNumRoundTrip(t *testing.T) {
	b, err := NewBoard(7)
	assert := assert.New(t)
	assert.NoError(err)

	for _, k := range b.Keys() {
		assert.Equal(k.Index, indexFor(k.Octave, k.OctaveKeyNum))
	}
}
