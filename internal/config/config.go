// Package config loads roomviz settings from defaults, an optional JSON
// file and ROOMVIZ_* environment variables, in that order.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"roomviz/internal/maps"
)

// DefaultRooms are rendered when no room list is configured.
var DefaultRooms = []string{"W56N22", "W49N48", "W49N46", "W48N46"}

// Config holds all roomviz settings.
type Config struct {
	Dataset    string   `json:"dataset"`
	OutputDir  string   `json:"output_dir"`
	Rooms      []string `json:"rooms"`
	Scale      int      `json:"scale"`
	Workers    int      `json:"workers"`
	SpritesDir string   `json:"sprites_dir"`
	LogLevel   string   `json:"log_level"`
	SSHAddr    string   `json:"ssh_addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Dataset:   "./test_data/map-mmo-shard3.json",
		OutputDir: "./output_images",
		Rooms:     append([]string(nil), DefaultRooms...),
		Scale:     16,
		Workers:   1,
		LogLevel:  "info",
		SSHAddr:   ":2222",
	}
}

// Load returns the defaults overlaid with the JSON file at path, if path is
// not empty, and then with the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("ROOMVIZ_DATASET", &c.Dataset)
	str("ROOMVIZ_OUTPUT_DIR", &c.OutputDir)
	str("ROOMVIZ_SPRITES_DIR", &c.SpritesDir)
	str("ROOMVIZ_LOG_LEVEL", &c.LogLevel)
	str("ROOMVIZ_SSH_ADDR", &c.SSHAddr)
	if port, ok := lookup("PORT"); ok && port != "" {
		c.SSHAddr = ":" + port
	}
	if v, ok := lookup("ROOMVIZ_ROOMS"); ok && v != "" {
		c.Rooms = SplitRooms(v)
	}
	if err := num("ROOMVIZ_SCALE", &c.Scale); err != nil {
		return err
	}
	return num("ROOMVIZ_WORKERS", &c.Workers)
}

// SplitRooms splits a comma or space separated room list.
func SplitRooms(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Dataset == "" {
		errs = append(errs, errors.New("dataset is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is empty"))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale %d must be positive", c.Scale))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers %d must be positive", c.Workers))
	}
	for _, name := range c.Rooms {
		if !maps.ValidRoomName(name) {
			errs = append(errs, fmt.Errorf("invalid room name %q", name))
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns a console logger on w at the configured level.
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(c.Level()).
		With().Timestamp().Logger()
}
