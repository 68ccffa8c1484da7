package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/piano/internal/config"
	"github.com/leandrodaf/piano/internal/genmodel"
	"github.com/leandrodaf/piano/internal/logger"
	"github.com/leandrodaf/piano/internal/playback"
	"github.com/leandrodaf/piano/internal/transport"
	"github.com/leandrodaf/piano/sdk/contracts"
	"github.com/leandrodaf/piano/sdk/piano"
	"github.com/spf13/cobra"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

var (
	playConfigPath string
	playModelURL   string
	playMIDIPort   string
	playAudio      bool
)

func init() {
	playCmd.Flags().StringVar(&playConfigPath, "config", "", "path to a YAML configuration file")
	playCmd.Flags().StringVar(&playModelURL, "model-url", "", "endpoint of a generative model service; empty uses the built-in Markov model")
	playCmd.Flags().StringVar(&playMIDIPort, "midi-port", "", "MIDI out port to play on; empty with --audio=false discards notes")
	playCmd.Flags().BoolVar(&playAudio, "audio", false, "play notes through the host audio device")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Runs a keyboard against a generative model",
	Long: `Runs a keyboard, triggers a first note to arm the scheduling loop and keeps
playing model-generated notes until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		play()
	},
}

func play() {
	log := logger.NewZapLogger()

	var opts []contracts.Option
	var modelTimeout = genmodel.DefaultTimeout
	if playConfigPath != "" {
		cfg, err := config.Load(playConfigPath)
		if err != nil {
			log.Fatal("could not load configuration", log.Field().Error("error", err))
		}
		opts = append(opts, cfg.Options()...)
		if playModelURL == "" {
			playModelURL = cfg.Model.URL
		}
		if playMIDIPort == "" {
			playMIDIPort = cfg.MIDI.Port
		}
		if t := cfg.ModelTimeout(); t > 0 {
			modelTimeout = t
		}
		if cfg.BPM > 0 {
			clock := transport.New(cfg.BPM)
			clock.Start()
			opts = append(opts, contracts.WithClock(clock))
		}
	}
	opts = append(opts, contracts.WithLogger(log))

	if playModelURL != "" {
		opts = append(opts, contracts.WithGenerator(genmodel.NewHTTPGenerator(playModelURL, modelTimeout)))
	}

	switch {
	case playAudio:
		sink, err := playback.NewAudioSink(log)
		if err != nil {
			log.Fatal("could not open audio device", log.Field().Error("error", err))
		}
		opts = append(opts, contracts.WithSink(sink))
	case playMIDIPort != "":
		sink, err := playback.NewMIDISink(playMIDIPort, log)
		if err != nil {
			log.Fatal("could not open MIDI port", log.Field().Error("error", err))
		}
		opts = append(opts, contracts.WithSink(sink))
	}

	kb, err := piano.NewVirtualPiano(opts...)
	if err != nil {
		log.Fatal("could not build keyboard", log.Field().Error("error", err))
	}
	defer kb.Close()

	// A first interaction seeds the history and arms the scheduling loop,
	// like a user pressing middle C.
	session := contracts.NewInputSession()
	session.PointerDown = true
	middleC := kb.KeyAt(0, 0)
	for _, key := range kb.Keys() {
		if key.MIDINote == 60 {
			middleC = key
			break
		}
	}
	if err := kb.Trigger(middleC.Index, 0, session.PointerDown); err != nil {
		log.Fatal("could not trigger first note", log.Field().Error("error", err))
	}
	session.PointerDown = false

	log.Info("playing, press Ctrl+C to stop", log.Field().String("session", session.ID.String()))
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	kb.Stop()
}
