package strategy

import (
	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/search"
)

// QualitySearch bisects JPEG quality. Floor is the normal-mode floor; wild
// mode always uses search.WildFloor.
type QualitySearch struct {
	Floor int
}

func (QualitySearch) Name() string { return "jpeg-quality-search" }

// Optimize decodes src, flattens any alpha onto white and searches quality.
func (q QualitySearch) Optimize(src *probe.Image, target int64, wild bool) (search.Outcome, error) {
	img, err := codec.Decode(src.Data)
	if err != nil {
		return search.Outcome{}, err
	}
	floor := q.Floor
	if floor == 0 {
		floor = search.DefaultFloor
	}
	p := codec.JPEGProber{Image: codec.FlattenWhite(img)}
	return search.Run(p, target, search.WithFloor(floor, wild))
}
