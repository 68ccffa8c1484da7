package keys

import (
	"fmt"
	"math"

	"github.com/leandrodaf/piano/internal/util"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// Fixed proportions of a black key relative to the white key unit.
const (
	blackWidthRatio  = 0.5
	blackHeightRatio = 2.0 / 3.0
)

// Fractional x-offsets of the five black keys within an octave, in white-key
// units, measured from two units left of the octave's C. Black keys are not
// centered on the white-key boundaries they straddle.
var blackOffsets = [5]float64{2.0 / 3.0, 11.0 / 6.0, 29.0 / 8.0, 19.0 / 4.0, 47.0 / 8.0}

// Geometry maps keys to x-coordinates and pixel coordinates back to keys for
// one board with a fixed white-key unit size.
type Geometry struct {
	board  *Board
	unit   float64
	height float64
}

// NewGeometry creates the pixel layout for a board. unit is the width of one
// white key, height the height of one white key.
func NewGeometry(board *Board, cfg contracts.GeometryConfig) (*Geometry, error) {
	if cfg.UnitWidth <= 0 || cfg.WhiteKeyHeight <= 0 {
		return nil, fmt.Errorf("%w: non-positive key dimensions %gx%g",
			contracts.ErrInvalidConfiguration, cfg.UnitWidth, cfg.WhiteKeyHeight)
	}
	return &Geometry{board: board, unit: cfg.UnitWidth, height: cfg.WhiteKeyHeight}, nil
}

// Width returns the total drawable width of the keyboard.
func (g *Geometry) Width() float64 {
	return g.unit * float64(g.board.WhiteCount())
}

// Height returns the drawable height of the keyboard.
func (g *Geometry) Height() float64 {
	return g.height
}

// BlackKeyWidth returns the pixel width of a black key.
func (g *Geometry) BlackKeyWidth() float64 {
	return g.unit * blackWidthRatio
}

// BlackKeyHeight returns the pixel height of a black key.
func (g *Geometry) BlackKeyHeight() float64 {
	return g.height * blackHeightRatio
}

// KeyX returns the x-coordinate of the left edge of a key. White keys tile
// the full width one unit apart; black keys sit at fixed fractional offsets
// within their octave.
func (g *Geometry) KeyX(key contracts.Key) float64 {
	if key.Color == contracts.White {
		return g.unit * float64(key.ColorIndex)
	}
	sel := (key.ColorIndex + 4) % 5
	octaveOffset := floorDiv(key.ColorIndex-1, 5)
	return g.unit * (blackOffsets[sel] + float64(7*octaveOffset) + 2)
}

// KeyAt maps a pixel coordinate back to the key under it. Black keys overlap
// the top portion of adjacent white keys and win there, so the black band is
// tested first. Coordinates outside the drawable bounds are clamped to the
// nearest valid key, since pointer coordinates are inherently noisy.
func (g *Geometry) KeyAt(x, y float64) contracts.Key {
	octave := int(math.Floor((x + 5*g.unit) / (7 * g.unit)))
	deltaX := x - float64(octave-1)*7*g.unit - 2*g.unit

	if y >= 0 && y <= g.BlackKeyHeight() {
		if key, ok := g.blackAt(octave, deltaX); ok {
			return key
		}
	}
	return g.whiteAt(octave, deltaX)
}

// blackAt tests deltaX against the five black-key intervals of the octave.
// Octave 0 only has its last black key and the topmost partial octave has
// none at all.
func (g *Geometry) blackAt(octave int, deltaX float64) (contracts.Key, bool) {
	if octave < 0 || octave > g.board.Octaves() {
		return contracts.Key{}, false
	}
	for i, offset := range blackOffsets {
		if octave == 0 && i < len(blackOffsets)-1 {
			continue
		}
		left := offset * g.unit
		if deltaX < left || deltaX >= left+g.BlackKeyWidth() {
			continue
		}
		key, err := g.board.Key(indexFor(octave, blackPositions[i]))
		if err != nil {
			return contracts.Key{}, false
		}
		return key, true
	}
	return contracts.Key{}, false
}

// whiteAt selects the white position under deltaX, clamping both the
// within-octave position and the resulting index so boundary octaves and
// out-of-range coordinates resolve to the nearest existing white key.
func (g *Geometry) whiteAt(octave int, deltaX float64) contracts.Key {
	n := util.Clamp(int(math.Floor(deltaX/g.unit)), 0, len(whitePositions)-1)
	index := util.Clamp(indexFor(octave, whitePositions[n]), 0, g.board.TotalKeys()-1)
	key, _ := g.board.Key(index)
	return key
}
