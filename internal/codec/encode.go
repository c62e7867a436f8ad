// Package codec decodes and encodes every format pixr handles. Encoding is
// in-memory only; callers decide where the bytes go.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/backmassage/pixr/internal/probe"
)

// Quality bounds accepted by the lossy encoders.
const (
	MinQuality = 1
	MaxQuality = 100
)

// Formats lists every format with an encoder, in the order check mode
// exercises them.
var Formats = []probe.Format{
	probe.FormatJPEG,
	probe.FormatPNG,
	probe.FormatGIF,
	probe.FormatBMP,
	probe.FormatTIFF,
	probe.FormatWebP,
}

// Encode encodes img as format. quality applies to JPEG and WebP and is
// ignored by the lossless formats.
func Encode(format probe.Format, img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case probe.FormatJPEG:
		if quality < MinQuality || quality > MaxQuality {
			return nil, &EncodeError{Format: format, Quality: quality,
				Err: fmt.Errorf("quality outside %d-%d", MinQuality, MaxQuality)}
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case probe.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	case probe.FormatGIF:
		err = gif.Encode(&buf, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})
	case probe.FormatBMP:
		err = bmp.Encode(&buf, img)
	case probe.FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case probe.FormatWebP:
		if quality < MinQuality || quality > MaxQuality {
			return nil, &EncodeError{Format: format, Quality: quality,
				Err: fmt.Errorf("quality outside %d-%d", MinQuality, MaxQuality)}
		}
		err = encodeWebP(&buf, img, quality)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &EncodeError{Format: format, Quality: quality, Err: err}
	}
	return buf.Bytes(), nil
}

// EncodeGIF writes every frame of g. Frames already carry palettes, so no
// requantisation happens here.
func EncodeGIF(g *gif.GIF) ([]byte, error) {
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, &EncodeError{Format: probe.FormatGIF, Err: err}
	}
	return buf.Bytes(), nil
}
