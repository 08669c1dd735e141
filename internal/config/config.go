// Package config loads pathclip's settings from a TOML file in the XDG
// config directory. Command-line flags override what the file sets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"github.com/matzehuels/pathclip/pkg/board"
	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// AppName names the application's directories.
const AppName = "pathclip"

// Config is the content of config.toml.
type Config struct {
	Board  BoardConfig  `toml:"board"`
	Redis  RedisConfig  `toml:"redis"`
	Server ServerConfig `toml:"server"`
	Paste  PasteConfig  `toml:"paste"`
}

// BoardConfig selects where copies go.
type BoardConfig struct {
	Name    string   `toml:"name"`
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	URL     string   `toml:"url"`
	TTL     Duration `toml:"ttl"`
}

// RedisConfig is used by the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig is used by `pathclip serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// PasteConfig tunes paste placement.
type PasteConfig struct {
	Offset     float64 `toml:"offset"`
	SessionDir string  `toml:"session_dir"`
}

// Duration is a time.Duration written as a string such as "30m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Name:    board.DefaultName,
			Backend: board.BackendFile,
			Dir:     filepath.Join(xdg.StateHome, AppName, "boards"),
			URL:     "http://localhost:7373",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: AppName + ":",
		},
		Server: ServerConfig{Addr: ":7373"},
		Paste: PasteConfig{
			Offset:     transfer.PasteOffset,
			SessionDir: filepath.Join(xdg.StateHome, AppName, "sessions"),
		},
	}
}

// Path returns the default location of config.toml.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Load reads the config file at path over the defaults. An empty path means
// the default location, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values no command could use.
func (c *Config) Validate() error {
	switch c.Board.Backend {
	case board.BackendFile, board.BackendRedis, board.BackendHTTP, board.BackendNull:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown board backend %q", c.Board.Backend)
	}
	if err := errors.ValidateBoardName(c.Board.Name); err != nil {
		return err
	}
	if c.Board.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "board ttl cannot be negative")
	}
	if c.Paste.Offset < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "paste offset cannot be negative")
	}
	return nil
}

// BoardOptions converts the board settings for board.Open.
func (c *Config) BoardOptions() board.Options {
	return board.Options{
		Backend: c.Board.Backend,
		Dir:     c.Board.Dir,
		URL:     c.Board.URL,
		Redis: board.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		},
	}
}
