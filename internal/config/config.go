package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/chriserin/testpick/internal/discover"
)

const (
	Dir         = ".testpick"
	FileName    = "config.json"
	HistoryFile = "history.db"
)

// Path is where the project config lives, relative to the project root.
var Path = filepath.Join(Dir, FileName)

type Config struct {
	Patterns    []string      `json:"patterns"`
	Exclude     []string      `json:"exclude,omitempty"`
	Workers     int           `json:"workers,omitempty"`
	MaxFileSize int64         `json:"max_file_size,omitempty"`
	History     HistoryConfig `json:"history"`
}

type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	File    string `json:"file"`
	Limit   int    `json:"limit,omitempty"`
}

func Default() Config {
	return Config{
		Patterns:    append([]string{}, discover.DefaultPatterns...),
		MaxFileSize: discover.DefaultMaxFileSize,
		History: HistoryConfig{
			Enabled: true,
			File:    filepath.Join(Dir, HistoryFile),
			Limit:   20,
		},
	}
}

func (c *Config) ApplyDefaults() {
	d := Default()
	if len(c.Patterns) == 0 {
		c.Patterns = d.Patterns
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = d.MaxFileSize
	}
	if c.History.File == "" {
		c.History.File = d.History.File
	}
	if c.History.Limit == 0 {
		c.History.Limit = d.History.Limit
	}
}

func (c Config) Validate() error {
	for _, p := range c.Patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("patterns: invalid glob %q", p)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative: %d", c.MaxFileSize)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative: %d", c.History.Limit)
	}
	if c.History.Enabled && c.History.File == "" {
		return errors.New("history.file is required when history is enabled")
	}
	return nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", path, err)
	}
	return c, nil
}

func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
