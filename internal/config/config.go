// Package config loads runtime settings from the environment, an optional
// .env file and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/blockfall/tetris"
)

const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

type Config struct {
	LogLevel     string
	LogFile      string
	Seed         uint64
	Randomizer   string
	CellSize     int
	DebugUI      bool
	SpectateAddr string
	RepeatDelay  time.Duration
	RepeatRate   time.Duration
	TickRate     time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogFile:     "blockfall.log",
		Randomizer:  RandomizerUniform,
		CellSize:    30,
		RepeatDelay: 200 * time.Millisecond,
		RepeatRate:  50 * time.Millisecond,
		TickRate:    16 * time.Millisecond,
	}
}

// Load reads .env (if present) and the environment, then applies flags parsed
// from args. name is used in flag usage output.
func Load(name string, args []string) (Config, error) {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overlays environment variables on the defaults.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.Randomizer = getEnv("RANDOMIZER", cfg.Randomizer)
	cfg.SpectateAddr = getEnv("SPECTATE_ADDR", cfg.SpectateAddr)

	var errs []error
	if v, ok := os.LookupEnv("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		errs = append(errs, wrapEnv("SEED", err))
		cfg.Seed = seed
	}
	if v, ok := os.LookupEnv("CELL_SIZE"); ok {
		size, err := strconv.Atoi(v)
		errs = append(errs, wrapEnv("CELL_SIZE", err))
		cfg.CellSize = size
	}
	if v, ok := os.LookupEnv("DEBUG_UI"); ok {
		enabled, err := strconv.ParseBool(v)
		errs = append(errs, wrapEnv("DEBUG_UI", err))
		cfg.DebugUI = enabled
	}
	errs = append(errs,
		durationEnv("REPEAT_DELAY", &cfg.RepeatDelay),
		durationEnv("REPEAT_RATE", &cfg.RepeatRate),
		durationEnv("TICK_RATE", &cfg.TickRate),
	)

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds every setting to fs using the current values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "log file for the terminal frontend")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "randomizer seed (0 picks one from the clock)")
	fs.StringVar(&c.Randomizer, "randomizer", c.Randomizer, "piece randomizer (uniform or bag)")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "cell size in pixels")
	fs.BoolVar(&c.DebugUI, "debug-ui", c.DebugUI, "show the imgui debug windows")
	fs.StringVar(&c.SpectateAddr, "spectate", c.SpectateAddr, "address for the spectator server (empty disables it)")
	fs.DurationVar(&c.RepeatDelay, "repeat-delay", c.RepeatDelay, "delay before a held key repeats")
	fs.DurationVar(&c.RepeatRate, "repeat-rate", c.RepeatRate, "interval between repeats of a held key")
	fs.DurationVar(&c.TickRate, "tick-rate", c.TickRate, "frame loop interval")
}

func (c Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.Randomizer != RandomizerUniform && c.Randomizer != RandomizerBag {
		errs = append(errs, fmt.Errorf("randomizer %q: want %q or %q", c.Randomizer, RandomizerUniform, RandomizerBag))
	}
	if c.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %d", c.CellSize))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be positive, got %s", c.TickRate))
	}
	if c.RepeatDelay < 0 || c.RepeatRate < 0 {
		errs = append(errs, errors.New("repeat timings must not be negative"))
	}
	return errors.Join(errs...)
}

// SeedOrNow returns the configured seed, or one derived from the clock when
// the seed is zero.
func (c Config) SeedOrNow() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// NewRandomizer builds the configured piece randomizer.
func (c Config) NewRandomizer() tetris.Randomizer {
	seed := c.SeedOrNow()
	if c.Randomizer == RandomizerBag {
		return tetris.NewBagRandomizer(seed)
	}
	return tetris.NewUniformRandomizer(seed)
}

// SetupLogging configures the global zerolog logger to write human readable
// output to w at the configured level.
func (c Config) SetupLogging(w io.Writer) {
	if lvl, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationEnv(k string, dst *time.Duration) error {
	v, ok := os.LookupEnv(k)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return wrapEnv(k, err)
	}
	*dst = d
	return nil
}

func wrapEnv(k string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", k, err)
}
