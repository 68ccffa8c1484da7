package contracts

// ColorClass distinguishes the two visually and physically distinct key kinds.
type ColorClass uint8

const (
	// White is a natural key (C, D, E, F, G, A, B).
	White ColorClass = iota
	// Black is an accidental key (C#, D#, F#, G#, A#).
	Black
)

// String returns the lowercase name of the color class.
func (c ColorClass) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// OctaveKind tags the octave a key belongs to. The lowest and highest octaves
// of a keyboard are partial and need special handling when mapping between
// indices and pixel coordinates.
type OctaveKind uint8

const (
	// RegularOctave is a full 12-key octave.
	RegularOctave OctaveKind = iota
	// LowBoundaryOctave is the partial octave below the first full octave.
	LowBoundaryOctave
	// HighBoundaryOctave is the partial octave above the last full octave.
	HighBoundaryOctave
)

// Key is one playable element of the keyboard. Keys are created once per
// keyboard configuration and never mutated afterwards.
type Key struct {
	Index        int        // Absolute position among all keys, dense, low to high.
	MIDINote     uint8      // MIDI note number (0-127).
	Octave       int        // Musical octave the key belongs to, 0-based.
	OctaveKeyNum int        // 1-indexed position within the 12-key chromatic octave (C=1 ... B=12).
	Color        ColorClass // White or Black.
	ColorIndex   int        // 0-indexed position among keys of the same color class.
	OctaveKind   OctaveKind // Regular or one of the partial boundary octaves.
	Name         string     // Pitch-class name plus pitch-notation octave, e.g. "C#4".
}
