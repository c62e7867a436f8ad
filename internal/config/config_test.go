package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_QualityRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"quality 0", func(c *Config) { c.DefaultQuality = 0 }, true},
		{"quality 101", func(c *Config) { c.DefaultQuality = 101 }, true},
		{"webp quality 100", func(c *Config) { c.WebPQuality = 100 }, false},
		{"floor 0", func(c *Config) { c.QualityFloor = 0 }, true},
		{"zero debounce", func(c *Config) { c.WatchDebounce = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultQuality != 85 {
		t.Errorf("default DefaultQuality = %d, want 85", cfg.DefaultQuality)
	}
	if cfg.WebPQuality != 80 {
		t.Errorf("default WebPQuality = %d, want 80", cfg.WebPQuality)
	}
	if cfg.QualityFloor != 50 {
		t.Errorf("default QualityFloor = %d, want 50", cfg.QualityFloor)
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.Verbose {
		t.Error("default Verbose should be false")
	}
}

func TestLoadFile_OverlaysKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "default_quality: 70\nquality_floor: 40\nwatch_debounce: 2s\ncolor: never\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DefaultQuality != 70 {
		t.Errorf("DefaultQuality = %d, want 70", cfg.DefaultQuality)
	}
	if cfg.QualityFloor != 40 {
		t.Errorf("QualityFloor = %d, want 40", cfg.QualityFloor)
	}
	if cfg.WatchDebounce != 2*time.Second {
		t.Errorf("WatchDebounce = %v, want 2s", cfg.WatchDebounce)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.WebPQuality != DefaultWebPQuality {
		t.Errorf("WebPQuality changed to %d although the key was absent", cfg.WebPQuality)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "qualty: 70\n"},
		{"bad duration", "watch_debounce: soon\n"},
		{"bad color", "color: sometimes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "c.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg := DefaultConfig()
			if err := LoadFile(path, &cfg); err == nil {
				t.Error("LoadFile should fail")
			}
		})
	}

	cfg := DefaultConfig()
	if err := LoadFile(filepath.Join(dir, "missing.yaml"), &cfg); err == nil {
		t.Error("LoadFile should fail for a missing file")
	}
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Errorf("empty file should load, got %v", err)
	}
}

func TestResolveFile_Precedence(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.yaml")
	if got := ResolveFile("/from/flag.yaml"); got != "/from/flag.yaml" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := ResolveFile(""); got != "/from/env.yaml" {
		t.Errorf("env should be used, got %q", got)
	}
}

func TestParseColorMode(t *testing.T) {
	if _, err := ParseColorMode("always"); err != nil {
		t.Errorf("always: %v", err)
	}
	if _, err := ParseColorMode("ALWAYS"); err == nil {
		t.Error("color modes are case-sensitive")
	}
	if err := ValidateQuality(0); !errors.Is(err, ErrQualityRange) {
		t.Errorf("ValidateQuality(0) = %v, want ErrQualityRange", err)
	}
}
