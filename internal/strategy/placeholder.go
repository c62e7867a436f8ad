package strategy

import (
	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/search"
)

// Placeholder encodes once at default settings. Best and Smallest are both
// that single encode, whether or not it fits the target.
type Placeholder struct {
	Format  probe.Format
	Quality int // WebP only
	Note    string
}

func (p Placeholder) Name() string { return "placeholder-" + p.Format.Extension() }

// Optimize re-encodes src in its own format. GIF keeps every frame.
func (p Placeholder) Optimize(src *probe.Image, target int64, _ bool) (search.Outcome, error) {
	var (
		b   []byte
		err error
	)
	if p.Format == probe.FormatGIF {
		g, derr := codec.DecodeGIF(src.Data)
		if derr != nil {
			return search.Outcome{}, derr
		}
		b, err = codec.EncodeGIF(g)
	} else {
		img, derr := codec.Decode(src.Data)
		if derr != nil {
			return search.Outcome{}, derr
		}
		b, err = codec.Encode(p.Format, img, p.Quality)
	}
	if err != nil {
		return search.Outcome{}, err
	}

	r := &search.ProbeResult{Quality: p.Quality, Size: len(b), Payload: b}
	return search.Outcome{
		Best:     r,
		Smallest: r,
		Probes:   1,
		Trace:    []search.Step{{Quality: p.Quality, Size: r.Size, Met: int64(r.Size) <= target}},
	}, nil
}
