// Package config loads StreamVM runtime configuration from TOML, grounded
// on the teacher's config.Config (config/config.go), adapted from ARM
// emulator settings (execution/debugger/display/trace/statistics) to the
// StreamVM equivalents: execution limits, display formatting, trace
// output, and the HTTP API server.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the StreamVM runtime configuration.
type Config struct {
	Execution struct {
		MaxSteps    int  `toml:"max_steps"`
		EnableTrace bool `toml:"enable_trace"`
	} `toml:"execution"`

	Display struct {
		NumberFormat string `toml:"number_format"` // dec or hex
	} `toml:"display"`

	Trace struct {
		OutputFile string `toml:"output_file"`
		FilterOn   string `toml:"filter"` // comma-separated register/sensor names, empty = all
	} `toml:"trace"`

	API struct {
		Port        int `toml:"port"`
		MaxSessions int `toml:"max_sessions"`
	} `toml:"api"`
}

// DefaultConfig returns a Config with StreamVM's spec-mandated defaults:
// max_steps matches spec.md §4.5's default run budget.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxSteps = 10000
	cfg.Execution.EnableTrace = false
	cfg.Display.NumberFormat = "dec"
	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.FilterOn = ""
	cfg.API.Port = 8080
	cfg.API.MaxSessions = 64
	return cfg
}

// Load reads a TOML config file, falling back to DefaultConfig if path is
// empty or does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes cfg to path as TOML, creating parent directories as needed.
func (cfg *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: failed to create %s: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

// DefaultConfigPath returns the platform-conventional path for a StreamVM
// config file, grounded on the teacher's GetConfigPath.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "streamvm.toml"
	}
	return filepath.Join(dir, "streamvm", "config.toml")
}
