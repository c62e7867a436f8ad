// Package logging provides the leveled logger shared by every runner.
//
// Console lines look like "2006-01-02 15:04:05 [LEVEL] text", with the level
// tag colored when the terminal allows it. ERROR lines go to the error
// stream. When a log file is configured every line is appended to it
// uncolored, including DEBUG lines that verbose mode printed.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

type level struct {
	tag    string
	style  term.Style
	stderr bool
}

var (
	levelInfo    = level{tag: "INFO", style: term.Blue}
	levelSuccess = level{tag: "SUCCESS", style: term.Green}
	levelWarn    = level{tag: "WARN", style: term.Yellow}
	levelError   = level{tag: "ERROR", style: term.Red, stderr: true}
	levelDebug   = level{tag: "DEBUG", style: term.Cyan}
)

// Logger writes leveled lines to the console and an optional file. It is
// safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	file   *os.File
	now    func() time.Time
}

// NewLogger applies cfg.ColorMode and, when cfg.LogFile is set, opens it
// for appending (creating parent directories). Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{out: os.Stdout, errOut: os.Stderr, now: time.Now}
	if cfg.LogFile == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	l.file = f
	return l, nil
}

// SetOutput redirects the console streams.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	l.mu.Lock()
	l.out, l.errOut = out, errOut
	l.mu.Unlock()
}

// Close closes the log file, if any. It is safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) logf(lv level, format string, args ...interface{}) {
	text := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	ts := l.now().Format(timeLayout)

	w := l.out
	if lv.stderr {
		w = l.errOut
	}
	fmt.Fprintf(w, "%s %s %s\n", ts, term.Paint(lv.style, "["+lv.tag+"]"), text)
	if l.file != nil {
		fmt.Fprintf(l.file, "%s [%s] %s\n", ts, lv.tag, text)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) { l.logf(levelInfo, format, args...) }

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...interface{}) { l.logf(levelSuccess, format, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) { l.logf(levelWarn, format, args...) }

// Error logs at ERROR level to the error stream.
func (l *Logger) Error(format string, args ...interface{}) { l.logf(levelError, format, args...) }

// Debug logs at DEBUG level when verbose is set.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if verbose {
		l.logf(levelDebug, format, args...)
	}
}
