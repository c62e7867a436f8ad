package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the command constructors.
var (
	ErrInvalidSizeFormat = errors.New("invalid size format (use e.g. 500KB, 2MB or a byte count)")
	ErrMissingInput      = errors.New("input path is required")
	ErrPercentageRange   = errors.New("percentage is outside the allowed range of 1-100")
	ErrQualityRange      = errors.New("quality must be between 1-100")
	ErrUnsupportedTarget = errors.New("unsupported target format")
)

// TargetFormat is a convert destination as typed by the user. "jpg" and
// "jpeg" are both accepted and kept distinct so the output extension matches.
type TargetFormat string

const (
	TargetPNG  TargetFormat = "png"
	TargetJPG  TargetFormat = "jpg"
	TargetJPEG TargetFormat = "jpeg"
	TargetWebP TargetFormat = "webp"
	TargetBMP  TargetFormat = "bmp"
	TargetTIFF TargetFormat = "tiff"
	TargetGIF  TargetFormat = "gif"
)

// TargetFormats lists the accepted convert targets in help order.
var TargetFormats = []TargetFormat{TargetPNG, TargetJPG, TargetJPEG, TargetWebP, TargetBMP, TargetTIFF, TargetGIF}

// ParseTargetFormat lowercases s and checks it against [TargetFormats].
func ParseTargetFormat(s string) (TargetFormat, error) {
	t := TargetFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range TargetFormats {
		if t == f {
			return t, nil
		}
	}
	names := make([]string, len(TargetFormats))
	for i, f := range TargetFormats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedTarget, s, strings.Join(names, ", "))
}

// IsJPEG reports whether the target is either JPEG spelling.
func (t TargetFormat) IsJPEG() bool { return t == TargetJPG || t == TargetJPEG }

// Extension returns the output file extension including the dot.
func (t TargetFormat) Extension() string { return "." + string(t) }

// ValidateQuality checks that q lies in 1..100.
func ValidateQuality(q int) error {
	if q < MinQuality || q > MaxQuality {
		return fmt.Errorf("%w, got: %d", ErrQualityRange, q)
	}
	return nil
}

// Command is one fully validated pixr invocation. The set of variants is
// closed: [TargetSize], [Rescale], [Convert] and [Anonymize].
type Command interface {
	// Name is the CLI verb ("target-size", "rescale", ...).
	Name() string
	// Input is the path of the image to process.
	Input() string
	command()
}

// TargetSize re-encodes an image to fit under MaxSize bytes.
type TargetSize struct {
	InputPath  string
	OutputPath string // Optional explicit output path.
	MaxSize    Size
	Wild       bool // Drop the quality floor to 1.
}

// NewTargetSize validates target-size options.
func NewTargetSize(input, maxSize string, wild bool, output string) (TargetSize, error) {
	if input == "" {
		return TargetSize{}, ErrMissingInput
	}
	size, err := ParseSize(maxSize)
	if err != nil {
		return TargetSize{}, err
	}
	return TargetSize{InputPath: input, OutputPath: output, MaxSize: size, Wild: wild}, nil
}

func (TargetSize) Name() string    { return "target-size" }
func (c TargetSize) Input() string { return c.InputPath }
func (TargetSize) command()        {}

// Rescale resizes an image to Percentage of its dimensions.
type Rescale struct {
	InputPath  string
	OutputPath string
	Percentage int
}

// NewRescale validates rescale options.
func NewRescale(input string, percentage int, output string) (Rescale, error) {
	if input == "" {
		return Rescale{}, ErrMissingInput
	}
	if percentage < 1 || percentage > 100 {
		return Rescale{}, fmt.Errorf("%w: %d", ErrPercentageRange, percentage)
	}
	return Rescale{InputPath: input, OutputPath: output, Percentage: percentage}, nil
}

func (Rescale) Name() string    { return "rescale" }
func (c Rescale) Input() string { return c.InputPath }
func (Rescale) command()        {}

// Convert re-encodes an image in another format.
type Convert struct {
	InputPath  string
	OutputPath string
	Target     TargetFormat
	Quality    int
}

// NewConvert validates convert options.
func NewConvert(input, target string, quality int, output string) (Convert, error) {
	if input == "" {
		return Convert{}, ErrMissingInput
	}
	t, err := ParseTargetFormat(target)
	if err != nil {
		return Convert{}, err
	}
	if err := ValidateQuality(quality); err != nil {
		return Convert{}, err
	}
	return Convert{InputPath: input, OutputPath: output, Target: t, Quality: quality}, nil
}

func (Convert) Name() string    { return "convert" }
func (c Convert) Input() string { return c.InputPath }
func (Convert) command()        {}

// Anonymize strips all metadata by re-encoding the pixel data.
type Anonymize struct {
	InputPath  string
	OutputPath string
}

// NewAnonymize validates anonymize options.
func NewAnonymize(input, output string) (Anonymize, error) {
	if input == "" {
		return Anonymize{}, ErrMissingInput
	}
	return Anonymize{InputPath: input, OutputPath: output}, nil
}

func (Anonymize) Name() string    { return "anonymize" }
func (c Anonymize) Input() string { return c.InputPath }
func (Anonymize) command()        {}
