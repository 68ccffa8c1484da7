// Package keys implements the key-indexing algebra of a virtual piano
// keyboard: the bijective mapping between an absolute key index and its
// musical identity (octave, pitch class, MIDI note, name), its color class
// and its pixel geometry.
package keys

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/piano/sdk/contracts"
	"go.uber.org/multierr"
)

// ErrKeyOutOfRange is returned when an absolute key index does not exist on
// the configured keyboard.
var ErrKeyOutOfRange = errors.New("key index out of range")

// ReferenceMIDINote is middle C, located at the start of the 4th full octave.
const ReferenceMIDINote = 60

// Positions of the two color classes within a 12-key chromatic octave,
// 1-indexed (C=1 ... B=12).
var (
	whitePositions = [7]int{1, 3, 5, 6, 8, 10, 12}
	blackPositions = [5]int{2, 4, 7, 9, 11}
)

// rank of each octave key number within its color class, -1 when the key
// number belongs to the other class. Index 0 is unused.
var (
	whiteRank = [13]int{-1, 0, -1, 1, -1, 2, 3, -1, 4, -1, 5, -1, 6}
	blackRank = [13]int{-1, -1, 0, -1, 1, -1, -1, 2, -1, 3, -1, 4, -1}
)

var pitchClassNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Board is an immutable key table for a keyboard spanning a configured number
// of full octaves, built and validated once at construction.
type Board struct {
	octaves    int
	lowestMIDI int
	whiteCount int
	blackCount int
	keys       []contracts.Key
}

// NewBoard builds the key table for a keyboard spanning the given number of
// full octaves (1-7). The partial boundary octaves below the first and above
// the last full octave contribute the extra 3 white and 1 black keys.
func NewBoard(octaves int) (*Board, error) {
	if octaves < 1 || octaves > 7 {
		return nil, fmt.Errorf("%w: octave span %d outside [1,7]", contracts.ErrInvalidConfiguration, octaves)
	}

	b := &Board{
		octaves:    octaves,
		lowestMIDI: ReferenceMIDINote - (octaves/2)*12 - 3,
		whiteCount: 7*octaves + 3,
		blackCount: 5*octaves + 1,
	}
	b.keys = make([]contracts.Key, b.whiteCount+b.blackCount)
	for i := range b.keys {
		b.keys[i] = b.buildKey(i)
	}
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrInvalidConfiguration, err)
	}
	return b, nil
}

func (b *Board) buildKey(index int) contracts.Key {
	octave := Octave(index)
	keyNum := OctaveKeyNum(index)
	color := Color(index)
	midi := uint8(b.lowestMIDI + index)

	kind := contracts.RegularOctave
	switch octave {
	case 0:
		kind = contracts.LowBoundaryOctave
	case b.octaves + 1:
		kind = contracts.HighBoundaryOctave
	}

	return contracts.Key{
		Index:        index,
		MIDINote:     midi,
		Octave:       octave,
		OctaveKeyNum: keyNum,
		Color:        color,
		ColorIndex:   ColorIndex(index),
		OctaveKind:   kind,
		Name:         NoteName(int(midi)),
	}
}

// validate checks that the color index assignment is a dense, zero-based,
// monotonically increasing sequence per color class. Violations are
// aggregated so a broken table reports every bad key at once.
func (b *Board) validate() error {
	var err error
	var nextWhite, nextBlack int
	for _, k := range b.keys {
		want := &nextWhite
		if k.Color == contracts.Black {
			want = &nextBlack
		}
		if k.ColorIndex != *want {
			err = multierr.Append(err, fmt.Errorf("key %d (%s): %s color index %d, want %d",
				k.Index, k.Name, k.Color, k.ColorIndex, *want))
		}
		*want++
	}
	if nextWhite != b.whiteCount {
		err = multierr.Append(err, fmt.Errorf("counted %d white keys, want %d", nextWhite, b.whiteCount))
	}
	if nextBlack != b.blackCount {
		err = multierr.Append(err, fmt.Errorf("counted %d black keys, want %d", nextBlack, b.blackCount))
	}
	return err
}

// Octaves returns the configured span in full octaves.
func (b *Board) Octaves() int { return b.octaves }

// WhiteCount returns the number of white keys.
func (b *Board) WhiteCount() int { return b.whiteCount }

// BlackCount returns the number of black keys.
func (b *Board) BlackCount() int { return b.blackCount }

// TotalKeys returns the number of keys on the board.
func (b *Board) TotalKeys() int { return len(b.keys) }

// Keys returns the key table ordered by index. The returned slice is shared
// and must not be modified.
func (b *Board) Keys() []contracts.Key { return b.keys }

// Key returns the key at the given absolute index.
func (b *Board) Key(index int) (contracts.Key, error) {
	if index < 0 || index >= len(b.keys) {
		return contracts.Key{}, fmt.Errorf("%w: %d", ErrKeyOutOfRange, index)
	}
	return b.keys[index], nil
}

// Octave returns the musical octave the key at index belongs to. Octave 0 and
// the topmost octave are partial.
func Octave(index int) int {
	return (index + 9) / 12
}

// OctaveKeyNum returns the 1-indexed position of the key within its 12-key
// chromatic octave (C=1 ... B=12).
func OctaveKeyNum(index int) int {
	return (index+9)%12 + 1
}

// Color classifies the key at index as white or black from its position
// within the octave.
func Color(index int) contracts.ColorClass {
	if whiteRank[OctaveKeyNum(index)] >= 0 {
		return contracts.White
	}
	return contracts.Black
}

// ColorIndex returns the 0-indexed position of the key among keys of the same
// color class. The additive offsets fold in the partial boundary octaves.
func ColorIndex(index int) int {
	keyNum := OctaveKeyNum(index)
	octave := Octave(index)
	if r := whiteRank[keyNum]; r >= 0 {
		return r + 7*octave - 5
	}
	return blackRank[keyNum] + 5*octave - 4
}

// NoteName renders a MIDI note number as its pitch-class name plus
// pitch-notation octave, relative to middle C = "C4".
func NoteName(midiNote int) string {
	delta := midiNote - ReferenceMIDINote
	pitchClass := ((delta % 12) + 12) % 12
	return fmt.Sprintf("%s%d", pitchClassNames[pitchClass], floorDiv(delta, 12)+4)
}

// indexFor is the inverse of Octave and OctaveKeyNum. The result may fall
// outside the board for positions that only exist on a full octave.
func indexFor(octave, octaveKeyNum int) int {
	return 12*octave + octaveKeyNum - 10
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
