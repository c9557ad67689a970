// Package config loads modem/MAC runtime parameters from YAML,
// mirroring the shape of the teacher's direwolf.conf settings without
// reproducing its bespoke line-oriented parser.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/arngll/arngll-go/internal/arnce"
	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration for an arngll-tnc
// instance.
type Config struct {
	Callsign  string   `yaml:"callsign"`
	NetworkID uint16   `yaml:"network_id"`
	Audio     Audio    `yaml:"audio"`
	Backoff   Backoff  `yaml:"backoff"`
	KISS      KISS     `yaml:"kiss"`
}

// Audio holds the sample-rate/device parameters for the modem's audio
// adapter, per spec.md §6's audio device interface.
type Audio struct {
	SampleRate   int    `yaml:"sample_rate"`
	InputDevice  string `yaml:"input_device"`
	OutputDevice string `yaml:"output_device"`
	Amplitude    float64 `yaml:"amplitude"`
}

// Backoff holds the channel-clear retry bounds of spec.md §5.
type Backoff struct {
	MinMillis int `yaml:"min_ms"`
	MaxMillis int `yaml:"max_ms"`
}

// KISS holds the serial/TCP bridge parameters of internal/kisspty and
// internal/kissnet.
type KISS struct {
	SerialPath string `yaml:"serial_path"`
	TCPAddr    string `yaml:"tcp_addr"`
	Advertise  bool   `yaml:"advertise"`
}

// Default returns the baseline configuration: Bell-202's optimal
// internal sample rate, the default backoff bounds from spec.md §5, no
// callsign (must be supplied by the caller).
func Default() Config {
	return Config{
		NetworkID: 0,
		Audio: Audio{
			SampleRate: 7500,
			Amplitude:  0.75,
		},
		Backoff: Backoff{MinMillis: 5, MaxMillis: 50},
	}
}

// Load reads and parses a YAML config file at path, filling in any
// field left zero with Default()'s value.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks structural constraints Load cannot catch via YAML
// typing alone.
func (c Config) Validate() error {
	if _, err := arnce.ParseCallsign(c.Callsign); err != nil {
		return fmt.Errorf("config: invalid callsign %q: %w", c.Callsign, err)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Backoff.MinMillis <= 0 || c.Backoff.MaxMillis < c.Backoff.MinMillis {
		return fmt.Errorf("config: invalid backoff bounds [%d,%d]", c.Backoff.MinMillis, c.Backoff.MaxMillis)
	}
	return nil
}

// BackoffRange returns the configured backoff bounds as a time.Duration
// pair, for internal/mac.ChannelClear callers that want the configured
// bounds rather than spec.md's hardcoded 5-50ms default.
func (b Backoff) BackoffRange() (time.Duration, time.Duration) {
	return time.Duration(b.MinMillis) * time.Millisecond, time.Duration(b.MaxMillis) * time.Millisecond
}
