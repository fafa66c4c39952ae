// Package config resolves runtime settings from a .env file, CUBIT_* environment
// variables and command-line flags, in increasing precedence
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Environment variable names
const (
	EnvLevel     = "CUBIT_LEVEL"
	EnvWeapons   = "CUBIT_WEAPONS"
	EnvKeymap    = "CUBIT_KEYMAP"
	EnvDebug     = "CUBIT_DEBUG"
	EnvLogLevel  = "CUBIT_LOG_LEVEL"
	EnvLogFormat = "CUBIT_LOG_FORMAT"
	EnvSeed      = "CUBIT_SEED"
	EnvAudio     = "CUBIT_AUDIO_ENABLED"
	EnvVolume    = "CUBIT_MASTER_VOLUME"
	EnvSFX       = "CUBIT_SFX_VOLUMES"
	EnvMaxSteps  = "CUBIT_MAX_STEPS"
	EnvHold      = "CUBIT_KEY_HOLD"
)

// DefaultLevel is the level loaded when none is configured
const DefaultLevel = "assets/levels/level1.malen"

// Config is the resolved runtime configuration
type Config struct {
	LevelPath   string
	WeaponsPath string // Optional YAML weapon overrides
	KeymapPath  string // Optional YAML keymap overrides

	Debug     bool
	LogLevel  logrus.Level
	LogFormat string // "text" or "json"

	Seed     uint64 // 0 seeds from the clock
	MaxSteps int
	KeyHold  time.Duration

	Audio      bool
	Volume     int    // Master volume percent
	SFXVolumes string // JSON object of cue name to volume
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		LevelPath: DefaultLevel,
		LogLevel:  logrus.InfoLevel,
		LogFormat: "text",
		MaxSteps:  5,
		KeyHold:   300 * time.Millisecond,
		Audio:     true,
		Volume:    50,
	}
}

// Load reads envFiles (".env" when none given; missing files are not an error),
// then the environment, then args
func Load(args []string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("env file: %w", err)
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.applyFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str(EnvLevel, &c.LevelPath)
	str(EnvWeapons, &c.WeaponsPath)
	str(EnvKeymap, &c.KeymapPath)
	str(EnvSFX, &c.SFXVolumes)
	boolean(EnvDebug, &c.Debug)
	boolean(EnvAudio, &c.Audio)
	integer(EnvVolume, &c.Volume)
	integer(EnvMaxSteps, &c.MaxSteps)

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			c.LogLevel = lvl
		}
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.Seed = seed
		}
	}
	if v, ok := lookup(EnvHold); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvHold, err))
		} else {
			c.KeyHold = d
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) applyFlags(args []string) error {
	fsFlags := flag.NewFlagSet("cubit", flag.ContinueOnError)
	fsFlags.SetOutput(io.Discard)

	fsFlags.StringVar(&c.LevelPath, "level", c.LevelPath, "level tile file (.malen)")
	fsFlags.StringVar(&c.WeaponsPath, "weapons", c.WeaponsPath, "YAML weapon overrides")
	fsFlags.StringVar(&c.KeymapPath, "keymap", c.KeymapPath, "YAML keymap overrides")
	fsFlags.BoolVar(&c.Debug, "debug", c.Debug, "write debug logs to logs/cubit.log")
	fsFlags.Uint64Var(&c.Seed, "seed", c.Seed, "RNG seed, 0 for clock")
	fsFlags.BoolVar(&c.Audio, "audio", c.Audio, "enable sound")
	fsFlags.IntVar(&c.Volume, "volume", c.Volume, "master volume percent")
	fsFlags.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "fixed steps per frame cap, 0 uncapped")
	fsFlags.DurationVar(&c.KeyHold, "hold", c.KeyHold, "key hold window")
	fsFlags.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
	level := fsFlags.String("log-level", c.LogLevel.String(), "log level")

	if err := fsFlags.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		return fmt.Errorf("flags: log-level: %w", err)
	}
	c.LogLevel = lvl
	c.LogFormat = strings.ToLower(c.LogFormat)
	return c.validate()
}

func (c *Config) validate() error {
	switch {
	case c.LevelPath == "":
		return errors.New("config: level path is empty")
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	case c.MaxSteps < 0:
		return fmt.Errorf("config: max steps %d is negative", c.MaxSteps)
	case c.Volume < 0 || c.Volume > 100:
		return fmt.Errorf("config: volume %d outside 0-100", c.Volume)
	case c.KeyHold < 0:
		return fmt.Errorf("config: key hold %s is negative", c.KeyHold)
	}
	return nil
}

// Formatter returns the logrus formatter for LogFormat
func (c *Config) Formatter() logrus.Formatter {
	if c.LogFormat == "json" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}
}
