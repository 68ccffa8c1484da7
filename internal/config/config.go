// Package config loads keyboard configuration from a YAML file and resolves
// it into client options.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/piano/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// Config is the YAML shape of a keyboard configuration file. Zero values
// leave the corresponding option at its default.
type Config struct {
	Octaves  int     `yaml:"octaves"`
	BPM      float64 `yaml:"bpm"`
	LogLevel string  `yaml:"logLevel"`

	Geometry struct {
		UnitWidth      float64 `yaml:"unitWidth"`
		WhiteKeyHeight float64 `yaml:"whiteKeyHeight"`
	} `yaml:"geometry"`

	Scheduler struct {
		TickIntervalMS int `yaml:"tickIntervalMs"`
		LookbackBeats  int `yaml:"lookbackBeats"`
		BufferBeats    int `yaml:"bufferBeats"`
	} `yaml:"scheduler"`

	Model struct {
		URL       string `yaml:"url"`
		TimeoutMS int    `yaml:"timeoutMs"`
	} `yaml:"model"`

	MIDI struct {
		Port string `yaml:"port"`
	} `yaml:"midi"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

// ModelTimeout returns the configured model call timeout.
func (c *Config) ModelTimeout() time.Duration {
	return time.Duration(c.Model.TimeoutMS) * time.Millisecond
}

// Options resolves the file into functional options for the piano factory.
func (c *Config) Options() []contracts.Option {
	var opts []contracts.Option
	if c.Octaves != 0 {
		opts = append(opts, contracts.WithOctaves(c.Octaves))
	}
	if c.Geometry.UnitWidth != 0 || c.Geometry.WhiteKeyHeight != 0 {
		opts = append(opts, contracts.WithGeometry(contracts.GeometryConfig{
			UnitWidth:      c.Geometry.UnitWidth,
			WhiteKeyHeight: c.Geometry.WhiteKeyHeight,
		}))
	}
	if c.Scheduler.TickIntervalMS != 0 || c.Scheduler.LookbackBeats != 0 || c.Scheduler.BufferBeats != 0 {
		opts = append(opts, contracts.WithScheduler(contracts.SchedulerConfig{
			TickInterval:  time.Duration(c.Scheduler.TickIntervalMS) * time.Millisecond,
			LookbackBeats: c.Scheduler.LookbackBeats,
			BufferBeats:   c.Scheduler.BufferBeats,
		}))
	}
	if level, ok := parseLogLevel(c.LogLevel); ok {
		opts = append(opts, contracts.WithLogLevel(level))
	}
	return opts
}

func parseLogLevel(s string) (contracts.LogLevel, bool) {
	switch s {
	case "debug":
		return contracts.DebugLevel, true
	case "info":
		return contracts.InfoLevel, true
	case "warn":
		return contracts.WarnLevel, true
	case "error":
		return contracts.ErrorLevel, true
	default:
		return 0, false
	}
}
