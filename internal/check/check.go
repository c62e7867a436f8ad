// Package check provides encoder diagnostics (pixr check) and the
// pre-pipeline dependency check (CheckDeps) for the external cwebp binary.
package check

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/probe"
)

// Sentinel errors returned by RunCheck and CheckDeps.
var (
	ErrEncoderFailed   = errors.New("encoder test failed")
	ErrWebPUnavailable = errors.New("cwebp binary unavailable")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Swapped out in tests.
var (
	encode      = codec.Encode
	prepareWebP = codec.PrepareWebP
)

// testImageSize is the edge length of the generated test image.
const testImageSize = 16

// RunCheck encodes a small gradient through every encoder and logs the
// result of each. It returns ErrEncoderFailed (wrapped with the failing
// format names) if any encoder did not produce output.
func RunCheck(cfg *config.Config, log Logger) error {
	log.Info("=== Encoder Check ===")

	img := testImage()
	var failed []probe.Format
	for _, f := range codec.Formats {
		if f == probe.FormatWebP {
			if err := prepareWebP(); err != nil {
				log.Error("%s: %v", f, err)
				failed = append(failed, f)
				continue
			}
		}
		data, err := encode(f, img, cfg.DefaultQuality)
		switch {
		case err != nil:
			log.Error("%s: %v", f, err)
			failed = append(failed, f)
		case len(data) == 0:
			log.Error("%s: encoder produced no output", f)
			failed = append(failed, f)
		default:
			log.Success("%s encoder works (%d bytes)", f, len(data))
			log.Debug(cfg.Verbose, "  %s test image %dx%d at quality %d", f, testImageSize, testImageSize, cfg.DefaultQuality)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %v", ErrEncoderFailed, failed)
	}
	return nil
}

// CheckDeps verifies that the encoders a run needs are usable before any
// work starts. Only WebP depends on an external binary.
func CheckDeps(format probe.Format) error {
	if format != probe.FormatWebP {
		return nil
	}
	if err := prepareWebP(); err != nil {
		return fmt.Errorf("%w: %v", ErrWebPUnavailable, err)
	}
	return nil
}

// testImage returns a small RGBA gradient with partial transparency so
// every encoder path (alpha, palette, lossy) is exercised.
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, testImageSize, testImageSize))
	for y := 0; y < testImageSize; y++ {
		for x := 0; x < testImageSize; x++ {
			img.Set(x, y, color.NRGBA{
				R: uint8(x * 255 / (testImageSize - 1)),
				G: uint8(y * 255 / (testImageSize - 1)),
				B: 128,
				A: uint8(128 + x*127/(testImageSize-1)),
			})
		}
	}
	return img
}
