package codec

import (
	"image"

	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/search"
)

// JPEGProber encodes Image as JPEG at the requested quality. Image must
// already be opaque (see Flatten); it is never modified.
type JPEGProber struct {
	Image image.Image
}

// Probe implements search.Prober.
func (p JPEGProber) Probe(quality int) (search.ProbeResult, error) {
	b, err := Encode(probe.FormatJPEG, p.Image, quality)
	if err != nil {
		return search.ProbeResult{}, err
	}
	return search.ProbeResult{Quality: quality, Size: len(b), Payload: b}, nil
}
