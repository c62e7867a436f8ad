package probe

import (
	"fmt"
	"strings"
)

// Format is a detected container format. Values match the names reported to
// the user.
type Format string

const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
	FormatGIF  Format = "GIF"
	FormatWebP Format = "WEBP"
	FormatBMP  Format = "BMP"
	FormatTIFF Format = "TIFF"
)

// Extension returns the lowercase file extension (without dot) used for
// outputs in this format. JPEG maps to "jpg".
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return strings.ToLower(string(f))
}

// Mode is the source color mode, named the way image tools usually report it.
type Mode string

const (
	ModeRGB     Mode = "RGB"
	ModeRGBA    Mode = "RGBA"
	ModeGray    Mode = "L"
	ModeGrayA   Mode = "LA"
	ModePalette Mode = "P"
	ModeCMYK    Mode = "CMYK"
	ModeUnknown Mode = "unknown"
)

// HasAlpha reports whether the mode carries an alpha channel.
func (m Mode) HasAlpha() bool {
	return m == ModeRGBA || m == ModeGrayA
}

// Image is the inspected view of one file. Data holds the complete file
// contents; callers must treat it as read-only.
type Image struct {
	Path     string
	Format   Format
	Size     int64
	Width    int
	Height   int
	Mode     Mode
	Animated bool
	Frames   int
	Data     []byte
}

// Resolution returns "WxH", or "unknown" when dimensions are missing.
func (img *Image) Resolution() string {
	if img.Width <= 0 || img.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", img.Width, img.Height)
}
