// Package playback contains sinks that sound triggered notes and observers
// that notify rendering surfaces.
package playback

import (
	"fmt"
	"time"

	"github.com/leandrodaf/piano/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// DefaultGate is how long a triggered note is held before the matching
// note-off is sent.
const DefaultGate = 400 * time.Millisecond

// MIDISink plays triggered keys on a MIDI out port. A driver must be
// registered by the importing binary, e.g. with a blank rtmididrv import.
type MIDISink struct {
	out      drivers.Out
	send     func(midi.Message) error
	channel  uint8
	velocity uint8
	gate     time.Duration
	logger   contracts.Logger
}

// NewMIDISink opens the named out port. An empty name selects the first
// available port.
func NewMIDISink(portName string, logger contracts.Logger) (*MIDISink, error) {
	var out drivers.Out
	var err error
	if portName == "" {
		out, err = midi.OutPort(0)
	} else {
		out, err = midi.FindOutPort(portName)
	}
	if err != nil {
		return nil, fmt.Errorf("opening MIDI out port %q: %w", portName, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("preparing MIDI sender: %w", err)
	}
	logger.Info("MIDI sink ready", logger.Field().String("port", out.String()))
	return &MIDISink{
		out:      out,
		send:     send,
		channel:  0,
		velocity: 100,
		gate:     DefaultGate,
		logger:   logger,
	}, nil
}

// Trigger implements contracts.PlaybackSink. The note-off is sent after a
// fixed gate time.
func (s *MIDISink) Trigger(key contracts.Key, at contracts.Ticks) error {
	if err := s.send(midi.NoteOn(s.channel, key.MIDINote, s.velocity)); err != nil {
		return fmt.Errorf("sending note on: %w", err)
	}
	note := key.MIDINote
	time.AfterFunc(s.gate, func() {
		if err := s.send(midi.NoteOff(s.channel, note)); err != nil {
			s.logger.Warn("sending note off failed",
				s.logger.Field().Uint8("note", note),
				s.logger.Field().Error("error", err))
		}
	})
	return nil
}

// Close releases the out port.
func (s *MIDISink) Close() error {
	return s.out.Close()
}
