package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/backmassage/pixr/internal/probe"
)

// targetSizeFormats is the closed set of formats target-size accepts.
var targetSizeFormats = []probe.Format{probe.FormatPNG, probe.FormatJPEG, probe.FormatGIF, probe.FormatWebP}

// openInput checks that path names an existing regular file and inspects it.
func openInput(path string) (*probe.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	img, err := probe.Open(path)
	if errors.Is(err, probe.ErrUnknownFormat) {
		return nil, fmt.Errorf("%w: %s is not a recognised image", ErrUnsupportedFormat, path)
	}
	return img, err
}

// checkTargetSizeInput enforces the format and animation preconditions of
// target-size. It runs before any strategy is selected.
func checkTargetSizeInput(img *probe.Image) error {
	allowed := false
	names := make([]string, len(targetSizeFormats))
	for i, f := range targetSizeFormats {
		names[i] = string(f)
		if img.Format == f {
			allowed = true
		}
	}
	if !allowed {
		return fmt.Errorf("%w: '%s' is not supported for target-size. Supported formats are: %s",
			ErrUnsupportedFormat, img.Format, strings.Join(names, ", "))
	}
	if img.Animated && img.Format != probe.FormatGIF {
		return fmt.Errorf("%w: target size for animated %s (%d frames); only GIF animation is supported",
			ErrUnsupportedAnimation, img.Format, img.Frames)
	}
	return nil
}
