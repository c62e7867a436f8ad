package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	// Register decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sentinel errors returned by Open and Inspect.
var (
	ErrUnknownFormat = errors.New("unrecognized image format")
	ErrCorrupt       = errors.New("unreadable image header")
)

// Open reads the file at path and inspects it.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	img, err := Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}
	img.Path = path
	return img, nil
}

// Inspect builds an Image from in-memory file contents. The returned Image
// references data directly.
func Inspect(data []byte) (*Image, error) {
	f, ok := DetectFormat(data)
	if !ok {
		return nil, ErrUnknownFormat
	}

	img := &Image{Format: f, Size: int64(len(data)), Data: data, Mode: ModeUnknown}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	switch {
	case err == nil:
		img.Width, img.Height = cfg.Width, cfg.Height
		img.Mode = detectMode(f, data, cfg.ColorModel)
	case f == FormatWebP:
		// Animated WebP is not decodable here; fall back to the VP8X canvas.
		w, h, alpha, ok := vp8xCanvas(data)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		img.Width, img.Height = w, h
		img.Mode = ModeRGB
		if alpha {
			img.Mode = ModeRGBA
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	img.Frames = countFrames(f, data)
	img.Animated = img.Frames > 1
	return img, nil
}

// detectMode maps a decoder color model to a Mode. PNG reads the IHDR color
// type directly because the stdlib decoder reports RGBA for plain RGB files.
func detectMode(f Format, data []byte, m color.Model) Mode {
	if f == FormatPNG && len(data) >= 26 {
		switch data[25] {
		case 0:
			return ModeGray
		case 2:
			return ModeRGB
		case 3:
			return ModePalette
		case 4:
			return ModeGrayA
		case 6:
			return ModeRGBA
		}
	}
	if _, ok := m.(color.Palette); ok {
		return ModePalette
	}
	switch m {
	case color.YCbCrModel:
		return ModeRGB
	case color.NYCbCrAModel:
		return ModeRGBA
	case color.GrayModel, color.Gray16Model:
		return ModeGray
	case color.RGBAModel, color.RGBA64Model:
		if f == FormatBMP {
			return ModeRGB
		}
		return ModeRGBA
	case color.NRGBAModel, color.NRGBA64Model:
		return ModeRGBA
	case color.CMYKModel:
		return ModeCMYK
	}
	return ModeUnknown
}

// vp8xCanvas reads the canvas size and alpha flag from a VP8X chunk.
func vp8xCanvas(data []byte) (w, h int, alpha, ok bool) {
	if len(data) < 30 || string(data[12:16]) != "VP8X" {
		return 0, 0, false, false
	}
	flags := data[20]
	w = int(uint32(data[24])|uint32(data[25])<<8|uint32(data[26])<<16) + 1
	h = int(uint32(data[27])|uint32(data[28])<<8|uint32(data[29])<<16) + 1
	return w, h, flags&0x10 != 0, true
}

func be32(b []byte) int {
	return int(binary.BigEndian.Uint32(b))
}
