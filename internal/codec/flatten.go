package codec

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type opaquer interface {
	Opaque() bool
}

// Flatten composites img over a solid background and returns an opaque
// image. Images that are already opaque are returned unchanged.
func Flatten(img image.Image, bg color.Color) image.Image {
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// FlattenWhite is Flatten over white, the background used for JPEG output.
func FlattenWhite(img image.Image) image.Image {
	return Flatten(img, color.White)
}
