package playback

import "github.com/leandrodaf/piano/sdk/contracts"

// NoopSink discards triggered notes. It is the default sink, so a keyboard
// can be exercised without any audio or MIDI device.
type NoopSink struct{}

// Trigger implements contracts.PlaybackSink.
func (NoopSink) Trigger(key contracts.Key, at contracts.Ticks) error {
	return nil
}
