package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the CLI's configuration options.
type Config struct {
	HistoryFile string `json:"history_file,omitempty"`
	MaxRows     uint32 `json:"max_rows,omitempty"`
	MaxCols     uint32 `json:"max_cols,omitempty"`
}

// DefaultConfig returns the configuration used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		MaxRows: 10000,
		MaxCols: 1000,
	}
}

// configPath returns the config file location:
// $XDG_CONFIG_HOME/sheet/config.json, falling back to
// ~/.config/sheet/config.json. Empty when no home directory can be
// determined.
func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sheet", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sheet", "config.json")
}

// LoadConfig reads the config file if present. The file is HuJSON:
// JSON with comments and trailing commas allowed. A missing file is
// not an error; defaults apply.
func LoadConfig() (Config, error) {
	return loadConfigFile(configPath())
}

func loadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// historyFile returns the REPL history location, preferring the
// configured path.
func (c Config) historyFile() string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sheet_history")
}
