// Package piano is the public entry point of the virtual piano SDK.
package piano

import (
	"github.com/leandrodaf/piano/sdk/contracts"
)

// NewVirtualPiano creates a virtual piano keyboard with the specified
// options. It applies default options, builds and validates the key table and
// wires the model-driven scheduler to its collaborators.
//
// opts ...contracts.Option: A variadic list of option functions to customize the configuration.
//
// Returns:
//   - contracts.VirtualPiano: An instance of the keyboard.
//   - error: contracts.ErrInvalidConfiguration when the octave span or the
//     geometry is out of range.
func NewVirtualPiano(opts ...contracts.Option) (contracts.VirtualPiano, error) {
	options := applyDefaultOptions(opts...)
	return newKeyboard(options)
}
