// Package strategy picks how a source format is driven toward a target size:
// a quality search for JPEG, a single default encode for formats without a
// usable quality knob.
package strategy

import (
	"errors"
	"fmt"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/search"
)

// ErrUnsupportedFormat is returned by Select for formats outside the closed
// set of target-size strategies.
var ErrUnsupportedFormat = errors.New("no target-size strategy for format")

// Strategy optimizes one source image toward target bytes.
type Strategy interface {
	Name() string
	Optimize(src *probe.Image, target int64, wild bool) (search.Outcome, error)
}

// Selector carries the tunables strategies are built with.
type Selector struct {
	QualityFloor int
	WebPQuality  int
}

// NewSelector reads the strategy tunables from cfg.
func NewSelector(cfg *config.Config) Selector {
	return Selector{QualityFloor: cfg.QualityFloor, WebPQuality: cfg.WebPQuality}
}

// DefaultSelector uses the built-in floor and WebP quality.
func DefaultSelector() Selector {
	return Selector{QualityFloor: search.DefaultFloor, WebPQuality: config.DefaultWebPQuality}
}

// Select maps a detected format to its strategy using the defaults.
func Select(format probe.Format) (Strategy, error) {
	return DefaultSelector().Select(format)
}

// Select maps a detected format to its strategy.
func (s Selector) Select(format probe.Format) (Strategy, error) {
	switch format {
	case probe.FormatJPEG:
		return QualitySearch{Floor: s.QualityFloor}, nil
	case probe.FormatPNG:
		return Placeholder{Format: probe.FormatPNG, Note: "PNG optimization not yet implemented"}, nil
	case probe.FormatWebP:
		return Placeholder{Format: probe.FormatWebP, Quality: s.WebPQuality, Note: "WebP optimization not yet implemented"}, nil
	case probe.FormatGIF:
		return Placeholder{Format: probe.FormatGIF, Note: "GIF optimization not yet implemented"}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
