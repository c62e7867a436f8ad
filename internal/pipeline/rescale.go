package pipeline

import (
	"fmt"
	"image"
	"image/gif"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/naming"
)

// Rescale resizes the input to cmd.Percentage of its dimensions with
// Lanczos resampling and writes it in the same format. Animated GIFs keep
// every frame, their delays and loop count.
func Rescale(cfg *config.Config, cmd config.Rescale, log *logging.Logger) (Report, error) {
	src, err := openInput(cmd.InputPath)
	if err != nil {
		return Report{}, err
	}
	w, h := scaledDims(src.Width, src.Height, cmd.Percentage)
	log.Debug(cfg.Verbose, "%s: %s %s -> %dx%d", cmd.InputPath, src.Format, src.Resolution(), w, h)

	var data []byte
	if isAnimatedGIF(src) {
		g, err := codec.DecodeGIF(src.Data)
		if err != nil {
			return Report{}, err
		}
		rescaleGIF(g, w, h)
		data, err = codec.EncodeGIF(g)
		if err != nil {
			return Report{}, err
		}
	} else {
		img, err := codec.Decode(src.Data)
		if err != nil {
			return Report{}, err
		}
		scaled := resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
		data, err = codec.Encode(src.Format, scaled, cfg.DefaultQuality)
		if err != nil {
			return Report{}, err
		}
	}

	out := naming.OutputPath(cmd.InputPath, cmd.OutputPath, naming.RescaledSuffix(cmd.Percentage), "")
	if err := writeAtomic(out, data); err != nil {
		return Report{}, err
	}
	return Report{
		Command:      cmd.Name(),
		Input:        cmd.InputPath,
		Output:       out,
		Outcome:      Achieved,
		OriginalSize: src.Size,
		FinalSize:    int64(len(data)),
		Quality:      cfg.DefaultQuality,
		OriginalDims: src.Resolution(),
		FinalDims:    fmt.Sprintf("%dx%d", w, h),
	}, nil
}

// scaledDims truncates w*pct/100 and h*pct/100, never going below 1.
func scaledDims(w, h, pct int) (int, int) {
	return max(w*pct/100, 1), max(h*pct/100, 1)
}

// rescaleGIF composites each frame onto the logical screen, resizes the
// composite and requantises it to the frame's palette. Frames become full
// canvas images with background disposal.
func rescaleGIF(g *gif.GIF, w, h int) {
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() && len(g.Image) > 0 {
		screen = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(screen)
	var saved *image.RGBA

	frames := make([]*image.Paletted, len(g.Image))
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = image.NewRGBA(screen)
			draw.Draw(saved, screen, canvas, screen.Min, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		scaled := resize.Resize(uint(w), uint(h), canvas, resize.Lanczos3)
		dst := image.NewPaletted(image.Rect(0, 0, w, h), frame.Palette)
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min)
		frames[i] = dst

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, screen, saved, screen.Min, draw.Src)
		}
	}

	g.Image = frames
	g.Disposal = make([]byte, len(frames))
	for i := range g.Disposal {
		g.Disposal[i] = gif.DisposalBackground
	}
	g.Config = image.Config{}
	g.BackgroundIndex = 0
}
