package check

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/probe"
)

type recordLogger struct {
	lines []string
}

func (l *recordLogger) add(level, format string, args ...interface{}) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordLogger) Info(f string, a ...interface{})    { l.add("INFO", f, a...) }
func (l *recordLogger) Success(f string, a ...interface{}) { l.add("SUCCESS", f, a...) }
func (l *recordLogger) Warn(f string, a ...interface{})    { l.add("WARN", f, a...) }
func (l *recordLogger) Error(f string, a ...interface{})   { l.add("ERROR", f, a...) }
func (l *recordLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		l.add("DEBUG", f, a...)
	}
}

func (l *recordLogger) count(level string) int {
	n := 0
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+" ") {
			n++
		}
	}
	return n
}

// stubWebP replaces the external cwebp steps for the duration of the test.
func stubWebP(t *testing.T, prepErr error) {
	t.Helper()
	origEncode, origPrepare := encode, prepareWebP
	t.Cleanup(func() { encode, prepareWebP = origEncode, origPrepare })

	prepareWebP = func() error { return prepErr }
	encode = func(f probe.Format, img image.Image, q int) ([]byte, error) {
		if f == probe.FormatWebP {
			return []byte("RIFF....WEBP"), nil
		}
		return codec.Encode(f, img, q)
	}
}

func TestRunCheck_AllEncodersWork(t *testing.T) {
	stubWebP(t, nil)
	cfg := config.DefaultConfig()
	log := &recordLogger{}

	if err := RunCheck(&cfg, log); err != nil {
		t.Fatalf("RunCheck: %v", err)
	}
	if got := log.count("SUCCESS"); got != len(codec.Formats) {
		t.Errorf("successes = %d, want %d\n%s", got, len(codec.Formats), strings.Join(log.lines, "\n"))
	}
	if got := log.count("ERROR"); got != 0 {
		t.Errorf("errors = %d, want 0", got)
	}
}

func TestRunCheck_WebPUnavailable(t *testing.T) {
	stubWebP(t, errors.New("download failed"))
	cfg := config.DefaultConfig()
	log := &recordLogger{}

	err := RunCheck(&cfg, log)
	if !errors.Is(err, ErrEncoderFailed) {
		t.Fatalf("err = %v, want ErrEncoderFailed", err)
	}
	if !strings.Contains(err.Error(), "WEBP") {
		t.Errorf("error %q does not name the failing format", err)
	}
	if got := log.count("SUCCESS"); got != len(codec.Formats)-1 {
		t.Errorf("successes = %d, want %d", got, len(codec.Formats)-1)
	}
}

func TestCheckDeps(t *testing.T) {
	stubWebP(t, errors.New("no network"))

	if err := CheckDeps(probe.FormatPNG); err != nil {
		t.Errorf("CheckDeps(PNG) = %v, want nil", err)
	}
	if err := CheckDeps(probe.FormatWebP); !errors.Is(err, ErrWebPUnavailable) {
		t.Errorf("CheckDeps(WEBP) = %v, want ErrWebPUnavailable", err)
	}
}
