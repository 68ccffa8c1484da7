// Package genmodel contains implementations of the external generative model
// boundary: an HTTP client for a remote model service and a self-contained
// Markov generator usable offline and as the demo model service backend.
package genmodel

import "github.com/leandrodaf/piano/sdk/contracts"

// GenerateRequest is the JSON body sent to a model service.
type GenerateRequest struct {
	RequestID string          `json:"requestId"`
	History   []WireNote      `json:"history"`
	Start     contracts.Ticks `json:"start"`
	End       contracts.Ticks `json:"end"`
	Buffer    contracts.Ticks `json:"buffer"`
}

// WireNote is the JSON form of a note on the model service boundary.
type WireNote struct {
	KeyIndex int             `json:"keyIndex"`
	Position contracts.Ticks `json:"position"`
}

// ToWire converts notes to their wire form.
func ToWire(notes []contracts.Note) []WireNote {
	res := make([]WireNote, len(notes))
	for i, n := range notes {
		res[i] = WireNote{KeyIndex: n.KeyIndex, Position: n.Position}
	}
	return res
}

// FromWire converts wire notes back to notes.
func FromWire(notes []WireNote) []contracts.Note {
	res := make([]contracts.Note, len(notes))
	for i, n := range notes {
		res[i] = contracts.Note{KeyIndex: n.KeyIndex, Position: n.Position}
	}
	return res
}
