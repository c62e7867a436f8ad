package probe

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(w, h, color.RGBA{200, 40, 40, 255}), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeAnimatedGIF(t *testing.T, frames int) []byte {
	t.Helper()
	anim := &gif.GIF{}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, 16, 12), palette.Plan9)
		p.SetColorIndex(i%16, 0, uint8(i+1))
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, 10)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// riffChunk builds one little-endian RIFF chunk with even padding.
func riffChunk(kind string, data []byte) []byte {
	out := append([]byte(kind), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// animatedWebP builds a header-only animated WebP: VP8X with the animation
// flag, an ANIM chunk and frames ANMF chunks.
func animatedWebP(w, h, frames int) []byte {
	vp8x := make([]byte, 10)
	vp8x[0] = 0x02
	vp8x[4], vp8x[5], vp8x[6] = byte(w-1), byte((w-1)>>8), byte((w-1)>>16)
	vp8x[7], vp8x[8], vp8x[9] = byte(h-1), byte((h-1)>>8), byte((h-1)>>16)
	body := []byte("WEBP")
	body = append(body, riffChunk("VP8X", vp8x)...)
	body = append(body, riffChunk("ANIM", make([]byte, 6))...)
	for i := 0; i < frames; i++ {
		body = append(body, riffChunk("ANMF", make([]byte, 16))...)
	}
	body = append(body, riffChunk("EXIF", []byte("Exif\x00\x00MM"))...)
	out := append([]byte("RIFF"), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

// insertPNGChunk inserts a chunk with a valid CRC right after IHDR.
func insertPNGChunk(data []byte, kind string, payload []byte) []byte {
	c := make([]byte, 4, 12+len(payload))
	binary.BigEndian.PutUint32(c, uint32(len(payload)))
	c = append(c, kind...)
	c = append(c, payload...)
	crc := crc32.ChecksumIEEE(c[4:])
	c = binary.BigEndian.AppendUint32(c, crc)
	const afterIHDR = 8 + 25
	out := append([]byte{}, data[:afterIHDR]...)
	out = append(out, c...)
	return append(out, data[afterIHDR:]...)
}

// insertJPEGSegment inserts a marker segment right after SOI.
func insertJPEGSegment(data []byte, marker byte, payload []byte) []byte {
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	seg = append(seg, payload...)
	out := append([]byte{}, data[:2]...)
	out = append(out, seg...)
	return append(out, data[2:]...)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
		ok   bool
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG, true},
		{"png", pngSignature[:], FormatPNG, true},
		{"gif89a", []byte("GIF89a......"), FormatGIF, true},
		{"gif87a", []byte("GIF87a......"), FormatGIF, true},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), FormatWebP, true},
		{"riff wave is not webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "", false},
		{"tiff le", []byte("II*\x00\x08\x00"), FormatTIFF, true},
		{"tiff be", []byte("MM\x00*\x00\x08"), FormatTIFF, true},
		{"bmp", []byte("BM\x00\x00"), FormatBMP, true},
		{"text", []byte("hello world"), "", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectFormat(tt.data)
			if got != tt.want || ok != tt.ok {
				t.Errorf("DetectFormat = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInspect_Formats(t *testing.T) {
	var bmpBuf, tiffBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, solid(10, 6, color.RGBA{1, 2, 3, 255})); err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(&tiffBuf, solid(10, 6, color.RGBA{1, 2, 3, 255}), nil); err != nil {
		t.Fatal(err)
	}
	gray := image.NewGray(image.Rect(0, 0, 7, 5))

	tests := []struct {
		name     string
		data     []byte
		format   Format
		w, h     int
		mode     Mode
		animated bool
		frames   int
	}{
		{"jpeg", encodeJPEG(t, 32, 24), FormatJPEG, 32, 24, ModeRGB, false, 1},
		{"png rgba", encodePNG(t, solid(8, 4, color.RGBA{0, 0, 0, 128})), FormatPNG, 8, 4, ModeRGBA, false, 1},
		{"png gray", encodePNG(t, gray), FormatPNG, 7, 5, ModeGray, false, 1},
		{"animated gif", encodeAnimatedGIF(t, 3), FormatGIF, 16, 12, ModePalette, true, 3},
		{"still gif", encodeAnimatedGIF(t, 1), FormatGIF, 16, 12, ModePalette, false, 1},
		{"animated webp", animatedWebP(40, 30, 2), FormatWebP, 40, 30, ModeRGB, true, 2},
		{"bmp", bmpBuf.Bytes(), FormatBMP, 10, 6, ModeRGB, false, 1},
		{"tiff", tiffBuf.Bytes(), FormatTIFF, 10, 6, "", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Inspect(tt.data)
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if img.Format != tt.format {
				t.Errorf("Format = %q, want %q", img.Format, tt.format)
			}
			if img.Width != tt.w || img.Height != tt.h {
				t.Errorf("dimensions = %s, want %dx%d", img.Resolution(), tt.w, tt.h)
			}
			if tt.mode != "" && img.Mode != tt.mode {
				t.Errorf("Mode = %q, want %q", img.Mode, tt.mode)
			}
			if img.Animated != tt.animated || img.Frames != tt.frames {
				t.Errorf("Animated/Frames = %v/%d, want %v/%d", img.Animated, img.Frames, tt.animated, tt.frames)
			}
			if img.Size != int64(len(tt.data)) {
				t.Errorf("Size = %d, want %d", img.Size, len(tt.data))
			}
		})
	}
}

func TestInspect_Errors(t *testing.T) {
	if _, err := Inspect([]byte("not an image at all")); err != ErrUnknownFormat {
		t.Errorf("text: err = %v, want ErrUnknownFormat", err)
	}
	truncated := encodePNG(t, solid(4, 4, color.Black))[:12]
	if _, err := Inspect(truncated); err == nil {
		t.Error("truncated PNG should fail")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, encodeJPEG(t, 16, 16), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Path != path || img.Format != FormatJPEG {
		t.Errorf("Open = %+v", img)
	}
	if _, err := Open(filepath.Join(t.TempDir(), "missing.jpg")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestMetadata(t *testing.T) {
	jpg := encodeJPEG(t, 16, 16)
	jpg = insertJPEGSegment(jpg, 0xE1, []byte("Exif\x00\x00MM\x00*"))
	jpg = insertJPEGSegment(jpg, 0xFE, []byte("shot on a phone"))

	pngData := insertPNGChunk(encodePNG(t, solid(4, 4, color.White)), "tEXt", []byte("Author\x00someone"))

	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{"jpeg exif and comment", jpg, []string{"COM", "APP1 (Exif)"}},
		{"plain jpeg", encodeJPEG(t, 16, 16), nil},
		{"png text", pngData, []string{"tEXt"}},
		{"webp exif", animatedWebP(4, 4, 2), []string{"EXIF"}},
		{"gif loop extension ignored", encodeAnimatedGIF(t, 2), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Inspect(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			segs := Metadata(img)
			if len(segs) != len(tt.want) {
				t.Fatalf("Metadata = %v, want names %v", segs, tt.want)
			}
			for i, s := range segs {
				if s.Name != tt.want[i] {
					t.Errorf("segment %d = %q, want %q", i, s.Name, tt.want[i])
				}
			}
		})
	}
}

func TestFormatExtension(t *testing.T) {
	if FormatJPEG.Extension() != "jpg" || FormatWebP.Extension() != "webp" || FormatGIF.Extension() != "gif" {
		t.Error("unexpected extension mapping")
	}
}
