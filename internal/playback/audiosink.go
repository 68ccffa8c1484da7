package playback

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/leandrodaf/piano/sdk/contracts"
)

const (
	sampleRate   = 44100
	channelCount = 2
	toneDuration = 350 * time.Millisecond
	amplitude    = 0.25
)

// AudioSink sounds triggered keys through the host audio device as short
// decaying sine tones, for running without any MIDI device attached.
type AudioSink struct {
	ctx    *oto.Context
	logger contracts.Logger
}

// NewAudioSink initializes the audio device and blocks until it is ready.
func NewAudioSink(logger contracts.Logger) (*AudioSink, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create audio context: %w", err)
	}
	<-ready
	logger.Info("audio sink ready")
	return &AudioSink{ctx: ctx, logger: logger}, nil
}

// Trigger implements contracts.PlaybackSink.
func (s *AudioSink) Trigger(key contracts.Key, at contracts.Ticks) error {
	player := s.ctx.NewPlayer(bytes.NewReader(renderTone(noteFrequency(key.MIDINote))))
	player.Play()
	time.AfterFunc(toneDuration+100*time.Millisecond, func() {
		if err := player.Close(); err != nil {
			s.logger.Warn("closing tone player failed", s.logger.Field().Error("error", err))
		}
	})
	return nil
}

// Close suspends the audio device. An oto context cannot be destroyed.
func (s *AudioSink) Close() error {
	return s.ctx.Suspend()
}

// noteFrequency converts a MIDI note number to its equal-temperament
// frequency, A4 (69) = 440 Hz.
func noteFrequency(midiNote uint8) float64 {
	return 440 * math.Pow(2, (float64(midiNote)-69)/12)
}

// renderTone produces a sine tone with a linear decay envelope as interleaved
// 16-bit little-endian stereo samples.
func renderTone(freq float64) []byte {
	frames := int(float64(sampleRate) * toneDuration.Seconds())
	buf := make([]byte, frames*channelCount*2)
	for i := 0; i < frames; i++ {
		envelope := 1 - float64(i)/float64(frames)
		v := amplitude * envelope * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		sample := int16(v * math.MaxInt16)
		for ch := 0; ch < channelCount; ch++ {
			off := (i*channelCount + ch) * 2
			buf[off] = byte(sample)
			buf[off+1] = byte(sample >> 8)
		}
	}
	return buf
}
