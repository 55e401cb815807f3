package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "HEXSTORM_"

// Config is the full editor configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	View    ViewConfig    `toml:"view"`
	Diff    DiffConfig    `toml:"diff"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig tunes the edit engine.
type EditorConfig struct {
	// MaxUndo caps the undo journal per document.
	MaxUndo int `toml:"maxUndo"`

	// Coalesce selects undo grouping: "adjacent" or "none".
	Coalesce string `toml:"coalesce"`
}

// ViewConfig tunes the hex view.
type ViewConfig struct {
	// Columns is the number of bytes per row; 0 fits the terminal width.
	Columns int `toml:"columns"`

	// Ascii shows the text panel next to the hex panel.
	Ascii bool `toml:"ascii"`

	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme"`

	// Statusline shows the top status line.
	Statusline bool `toml:"statusline"`

	// Keybar shows the bottom function-key bar.
	Keybar bool `toml:"keybar"`
}

// DiffConfig tunes diff mode.
type DiffConfig struct {
	// Strategy selects the alignment algorithm: "resync" or "myers".
	Strategy string `toml:"strategy"`

	// Lookahead bounds resynchronization, in bytes per side.
	Lookahead int64 `toml:"lookahead"`

	// SyncLen is the identical run length that ends a mismatch.
	SyncLen int `toml:"syncLen"`
}

// LoggingConfig tunes the debug log.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error", "off".
	Level string `toml:"level"`

	// File is the log destination; empty disables logging.
	File string `toml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			MaxUndo:  1000,
			Coalesce: "adjacent",
		},
		View: ViewConfig{
			Columns:    0,
			Ascii:      true,
			Theme:      "dark",
			Statusline: true,
			Keybar:     true,
		},
		Diff: DiffConfig{
			Strategy:  "resync",
			Lookahead: 1024,
			SyncLen:   8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays HEXSTORM_ environment variables onto the config.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "THEME"); ok {
		c.View.Theme = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "COLUMNS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.View.Columns = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "MAX_UNDO"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Editor.MaxUndo = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "COALESCE"); ok {
		c.Editor.Coalesce = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "DIFF_STRATEGY"); ok {
		c.Diff.Strategy = v
	}
}

// DefaultPath returns the standard config file location, honoring
// HEXSTORM_CONFIG_DIR.
func DefaultPath() string {
	if dir, ok := os.LookupEnv(EnvPrefix + "CONFIG_DIR"); ok {
		return filepath.Join(dir, "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexstorm", "config.toml")
}

// DataDir returns the directory for persisted state, honoring
// HEXSTORM_DATA_DIR.
func DataDir() string {
	if dir, ok := os.LookupEnv(EnvPrefix + "DATA_DIR"); ok {
		return dir
	}
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok {
		return filepath.Join(dir, "hexstorm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "hexstorm")
}
