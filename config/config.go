// Package config loads runtime settings from YAML with environment overrides.
//
// Precedence, lowest first: Default, the YAML file, TERMCORE_* variables, command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termcore/app"
	"github.com/lixenwraith/termcore/event"
	"github.com/lixenwraith/termcore/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TERMCORE_"

// Config is the full runtime configuration
type Config struct {
	TickRate        time.Duration  `yaml:"tick_rate"`
	FrameInterval   time.Duration  `yaml:"frame_interval"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	ChannelCapacity int            `yaml:"channel_capacity"`
	QuitKey         string         `yaml:"quit_key"`
	Drain           string         `yaml:"drain"`    // one, all
	Overflow        string         `yaml:"overflow"` // drop_newest, drop_oldest, fail
	Mouse           bool           `yaml:"mouse"`
	Log             logging.Config `yaml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickRate:        event.DefaultTickRate,
		FrameInterval:   app.DefaultFrameInterval,
		ShutdownTimeout: app.DefaultShutdownTimeout,
		ChannelCapacity: event.DefaultCapacity,
		QuitKey:         "q",
		Drain:           app.DrainOne.String(),
		Overflow:        event.DropNewest.String(),
		Log:             logging.Default(),
	}
}

// Load reads path over the defaults; fields absent from the file keep their default
// Unknown keys are rejected
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// YAML renders the configuration in the file format Load accepts
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ApplyEnv overrides fields from KEY=VALUE pairs, as returned by os.Environ
// Unset variables leave fields untouched; malformed values are errors
func (c *Config) ApplyEnv(environ []string) error {
	env := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[strings.TrimPrefix(k, EnvPrefix)] = v
		}
	}

	var errs []error
	duration := func(key string, dst *time.Duration) {
		if v, ok := env[key]; ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := env[key]; ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := env[key]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	str := func(key string, dst *string) {
		if v, ok := env[key]; ok {
			*dst = v
		}
	}

	duration("TICK_RATE", &c.TickRate)
	duration("FRAME_INTERVAL", &c.FrameInterval)
	duration("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)
	integer("CHANNEL_CAPACITY", &c.ChannelCapacity)
	str("QUIT_KEY", &c.QuitKey)
	str("DRAIN", &c.Drain)
	str("OVERFLOW", &c.Overflow)
	boolean("MOUSE", &c.Mouse)
	boolean("LOG", &c.Log.Enabled)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_DIR", &c.Log.Dir)

	return errors.Join(errs...)
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive (got %s)", c.TickRate))
	}
	if c.FrameInterval < 0 {
		errs = append(errs, fmt.Errorf("frame_interval must not be negative (got %s)", c.FrameInterval))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive (got %s)", c.ShutdownTimeout))
	}
	if c.ChannelCapacity < 1 {
		errs = append(errs, fmt.Errorf("channel_capacity must be at least 1 (got %d)", c.ChannelCapacity))
	}
	if c.QuitKey != "" {
		if _, err := event.ParseKey(c.QuitKey); err != nil {
			errs = append(errs, fmt.Errorf("quit_key: %w", err))
		}
	}
	if _, err := app.ParseDrainPolicy(c.Drain); err != nil {
		errs = append(errs, fmt.Errorf("drain: %w", err))
	}
	if _, err := event.ParseOverflowPolicy(c.Overflow); err != nil {
		errs = append(errs, fmt.Errorf("overflow: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// AppOptions translates the configuration into app options
// An empty quit key disables key-triggered quit
func (c Config) AppOptions() ([]app.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var quit event.KeyInput
	if c.QuitKey != "" {
		quit, _ = event.ParseKey(c.QuitKey)
	}
	drain, _ := app.ParseDrainPolicy(c.Drain)
	overflow, _ := event.ParseOverflowPolicy(c.Overflow)

	return []app.Option{
		app.WithQuitKey(quit),
		app.WithChannelCapacity(c.ChannelCapacity),
		app.WithDrainPolicy(drain),
		app.WithOverflow(overflow),
		app.WithFrameInterval(c.FrameInterval),
		app.WithShutdownTimeout(c.ShutdownTimeout),
		app.WithMouse(c.Mouse),
	}, nil
}
