// Package term decides whether pixr writes ANSI colors and paints text when
// it does. The decision is made once by [Configure] and read by the logger
// and the banner through [Paint].
package term

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/backmassage/pixr/internal/config"
)

// Style is an ANSI SGR prefix.
type Style string

const (
	Red     Style = "\033[1;91m"
	Green   Style = "\033[1;92m"
	Yellow  Style = "\033[1;93m"
	Blue    Style = "\033[1;94m"
	Magenta Style = "\033[1;95m"
	Cyan    Style = "\033[1;96m"

	reset = "\033[0m"
)

var enabled atomic.Bool

// Configure resolves mode against stdout and the environment.
func Configure(mode config.ColorMode) {
	enabled.Store(Resolve(mode, IsTerminal(os.Stdout), os.Getenv))
}

// Enabled reports whether colors are active.
func Enabled() bool { return enabled.Load() }

// Paint wraps text in style when colors are enabled and returns it
// unchanged otherwise.
func Paint(style Style, text string) string {
	if !enabled.Load() || style == "" {
		return text
	}
	return string(style) + text + reset
}

// Resolve applies the color mode. Auto mode needs a TTY and honors
// NO_COLOR (https://no-color.org) and TERM=dumb.
func Resolve(mode config.ColorMode, tty bool, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return tty && getenv("NO_COLOR") == "" && !strings.EqualFold(getenv("TERM"), "dumb")
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
