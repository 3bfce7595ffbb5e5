package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tailscale/hujson"
)

// config holds the settings that may be given in a config file.
// Flags override them.
type config struct {
	NoStep  bool
	Delay   time.Duration
	Cell    int  // GUI tape cell size in pixels
	History bool // keep console history in ~/.tux_history
}

// configFile is the JSONC form of config. Absent fields keep their defaults.
type configFile struct {
	NoStep  *bool  `json:"nostep"`
	Delay   string `json:"delay"`
	Cell    int    `json:"cell"`
	History *bool  `json:"history"`
}

func defaultConfig() config {
	return config{Cell: 16, History: true}
}

// configPath returns $XDG_CONFIG_HOME/tux/config.json, falling back to
// ~/.config/tux/config.json, or the empty string if neither can be found.
func configPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tux", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tux", "config.json")
}

// loadConfig reads the named config file, which must exist, or the default
// config file, if it exists.
func loadConfig(name string) (config, error) {
	cfg := defaultConfig()
	mustExist := name != ""
	if !mustExist {
		name = configPath()
		if name == "" {
			return cfg, nil
		}
	}
	b, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) && !mustExist {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %v", err)
	}
	cfg, err = parseConfig(cfg, b)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", name, err)
	}
	return cfg, nil
}

// parseConfig applies the JSONC settings in b to cfg.
func parseConfig(cfg config, b []byte) (config, error) {
	b, err := hujson.Standardize(b)
	if err != nil {
		return cfg, fmt.Errorf("invalid JSONC: %w", err)
	}
	var f configFile
	if err := json.Unmarshal(b, &f); err != nil {
		return cfg, err
	}
	if f.NoStep != nil {
		cfg.NoStep = *f.NoStep
	}
	if f.Delay != "" {
		d, err := time.ParseDuration(f.Delay)
		if err != nil {
			return cfg, fmt.Errorf("delay: %v", err)
		}
		if d < 0 {
			return cfg, fmt.Errorf("delay: negative duration %v", d)
		}
		cfg.Delay = d
	}
	if f.Cell != 0 {
		if f.Cell < 4 {
			return cfg, fmt.Errorf("cell: %d is smaller than 4 pixels", f.Cell)
		}
		cfg.Cell = f.Cell
	}
	if f.History != nil {
		cfg.History = *f.History
	}
	return cfg, nil
}
