package pipeline

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	return &cfg
}

// testLogger returns a logger writing uncolored output to one buffer.
func testLogger(t *testing.T, cfg *config.Config) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	var buf bytes.Buffer
	log.SetOutput(&buf, &buf)
	return log, &buf
}

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func jpegBytes(t *testing.T, img image.Image, q int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func tiffBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// animatedGIFBytes builds frames 20x10 frames, each a different solid color.
func animatedGIFBytes(t *testing.T, frames int) []byte {
	t.Helper()
	g := &gif.GIF{LoopCount: 3}
	for i := 0; i < frames; i++ {
		p := image.NewPaletted(image.Rect(0, 0, 20, 10), palette.WebSafe)
		for j := range p.Pix {
			p.Pix[j] = uint8(i * 40)
		}
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, 10*(i+1))
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// animatedWebPHeader builds a header-only animated WebP (VP8X + ANMF
// chunks), enough for format and animation detection.
func animatedWebPHeader() []byte {
	chunk := func(kind string, data []byte) []byte {
		out := append([]byte(kind), 0, 0, 0, 0)
		binary.LittleEndian.PutUint32(out[4:], uint32(len(data)))
		return append(out, data...)
	}
	vp8x := make([]byte, 10)
	vp8x[0] = 0x02
	vp8x[4], vp8x[7] = 31, 31
	body := []byte("WEBP")
	body = append(body, chunk("VP8X", vp8x)...)
	body = append(body, chunk("ANMF", make([]byte, 16))...)
	body = append(body, chunk("ANMF", make([]byte, 16))...)
	out := append([]byte("RIFF"), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	return append(out, body...)
}

// withJPEGSegment inserts a marker segment right after SOI.
func withJPEGSegment(data []byte, marker byte, payload []byte) []byte {
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	seg = append(seg, payload...)
	out := append([]byte{}, data[:2]...)
	out = append(out, seg...)
	return append(out, data[2:]...)
}

func fileSize(t *testing.T, path string) int64 {
	t.Helper()
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return fi.Size()
}
