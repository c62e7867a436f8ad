// Package config holds runtime configuration: defaults, the optional YAML
// config file, and the validated per-command option types built from CLI
// flags. Defaults are explicit constants so that no component relies on an
// implicit framework default.
package config

import (
	"errors"
	"fmt"
	"time"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Quality constants shared by the runners and strategies.
const (
	DefaultQuality      = 85 // convert / rescale output quality for lossy formats.
	DefaultWebPQuality  = 80 // fixed quality of the WebP placeholder strategy.
	DefaultQualityFloor = 50 // lowest JPEG quality probed outside wild mode.
	MinQuality          = 1
	MaxQuality          = 100
	DefaultWatchDelay   = 500 * time.Millisecond
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by [LoadFile] and finally by CLI flags before being passed (by
// pointer) to the packages that need it.
type Config struct {
	// Encoding.
	DefaultQuality int // Default: 85. Overridden by --quality on convert.
	WebPQuality    int // Default: 80.
	QualityFloor   int // Default: 50. Ignored in wild mode (floor 1).

	// Watch mode.
	WatchDebounce time.Duration // Default: 500ms.

	// Display and logging.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Path of the YAML file that was loaded, if any.
}

// DefaultConfig returns a Config with every default set explicitly.
func DefaultConfig() Config {
	return Config{
		DefaultQuality: DefaultQuality,
		WebPQuality:    DefaultWebPQuality,
		QualityFloor:   DefaultQualityFloor,
		WatchDebounce:  DefaultWatchDelay,
		Verbose:        false,
		ColorMode:      ColorAuto,
	}
}

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if err := ValidateQuality(c.DefaultQuality); err != nil {
		return fmt.Errorf("default quality: %w", err)
	}
	if err := ValidateQuality(c.WebPQuality); err != nil {
		return fmt.Errorf("webp quality: %w", err)
	}
	if err := ValidateQuality(c.QualityFloor); err != nil {
		return fmt.Errorf("quality floor: %w", err)
	}
	if c.WatchDebounce <= 0 {
		return errors.New("watch debounce must be positive")
	}
	return nil
}

// ParseColorMode maps a flag or YAML value to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}
