package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted by [ResolveFile].
const EnvConfigPath = "PIXR_CONFIG"

// fileConfig mirrors the YAML layout. Pointer fields distinguish "unset"
// from zero so that only keys present in the file override defaults.
type fileConfig struct {
	DefaultQuality *int   `yaml:"default_quality"`
	WebPQuality    *int   `yaml:"webp_quality"`
	QualityFloor   *int   `yaml:"quality_floor"`
	WatchDebounce  string `yaml:"watch_debounce"`
	Color          string `yaml:"color"`
	LogFile        string `yaml:"log_file"`
	Verbose        *bool  `yaml:"verbose"`
}

// ResolveFile picks the config file to load: the explicit flag value, then
// $PIXR_CONFIG, then <user config dir>/pixr/config.yaml when it exists.
// An empty result means no file should be loaded.
func ResolveFile(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "pixr", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// LoadFile reads the YAML file at path and overlays its keys onto cfg.
// Unknown keys are rejected so typos surface instead of being ignored.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if fc.DefaultQuality != nil {
		cfg.DefaultQuality = *fc.DefaultQuality
	}
	if fc.WebPQuality != nil {
		cfg.WebPQuality = *fc.WebPQuality
	}
	if fc.QualityFloor != nil {
		cfg.QualityFloor = *fc.QualityFloor
	}
	if fc.WatchDebounce != "" {
		d, err := time.ParseDuration(fc.WatchDebounce)
		if err != nil {
			return fmt.Errorf("config %s: watch_debounce: %w", path, err)
		}
		cfg.WatchDebounce = d
	}
	if fc.Color != "" {
		mode, err := ParseColorMode(fc.Color)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg.ColorMode = mode
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	cfg.ConfigFile = path
	return nil
}
