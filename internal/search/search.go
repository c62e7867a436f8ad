// Package search implements the target-size quality search: a bounded
// bisection over encoder quality that returns the highest quality whose
// encoded size fits the target, never probing below a quality floor.
package search

import (
	"fmt"
)

const (
	// MaxIterations caps the number of probes per search.
	MaxIterations = 10
	// DefaultFloor is the lowest quality probed in normal mode.
	DefaultFloor = 50
	// WildFloor is the lowest quality probed when the floor is relaxed.
	WildFloor = 1

	MinQuality = 1
	MaxQuality = 100
)

// Prober encodes the source image at a given quality. Implementations must
// not mutate the source between calls.
type Prober interface {
	Probe(quality int) (ProbeResult, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(quality int) (ProbeResult, error)

// Probe calls f(quality).
func (f ProberFunc) Probe(quality int) (ProbeResult, error) { return f(quality) }

// Bounds is the quality interval searched. Floor is the lowest quality a
// probe may use; Low and High narrow as the search proceeds.
type Bounds struct {
	Low   int
	High  int
	Floor int
}

// NewBounds returns the full 1..100 interval with the floor for the mode.
func NewBounds(wild bool) Bounds {
	return WithFloor(DefaultFloor, wild)
}

// WithFloor returns the search interval for floor in normal mode and
// WildFloor when wild is set. floor is clamped into [MinQuality, MaxQuality].
// Floors above DefaultFloor start the interval at the floor; otherwise the
// first midpoint would already be below it and nothing would be probed.
func WithFloor(floor int, wild bool) Bounds {
	if wild {
		floor = WildFloor
	}
	floor = clamp(floor, MinQuality, MaxQuality)
	low := MinQuality
	if floor > DefaultFloor {
		low = floor
	}
	return Bounds{Low: low, High: MaxQuality, Floor: floor}
}

// Search runs the bisection with the default floor (or WildFloor when wild).
func Search(p Prober, targetBytes int64, wild bool) (Outcome, error) {
	return Run(p, targetBytes, NewBounds(wild))
}

// Run bisects b for the highest quality whose probe size is at most
// targetBytes. A midpoint below b.Floor sets FloorHit and ends the search.
// A probe error aborts the search and is returned with the partial outcome.
func Run(p Prober, targetBytes int64, b Bounds) (Outcome, error) {
	var out Outcome
	if b.Low > b.High {
		return out, fmt.Errorf("invalid search bounds: low %d > high %d", b.Low, b.High)
	}

	low, high := b.Low, b.High
	for i := 0; i < MaxIterations && low <= high; i++ {
		mid := (low + high) / 2
		if mid < b.Floor {
			out.FloorHit = true
			break
		}

		res, err := p.Probe(mid)
		if err != nil {
			return out, fmt.Errorf("probe at quality %d: %w", mid, err)
		}
		out.Probes++

		r := res
		if out.Smallest == nil || r.Size < out.Smallest.Size {
			out.Smallest = &r
		}
		met := int64(r.Size) <= targetBytes
		out.Trace = append(out.Trace, Step{Quality: r.Quality, Size: r.Size, Met: met})
		if met {
			out.Best = &r
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	if out.Best == nil && high < b.Floor && b.Floor > MinQuality {
		out.FloorHit = true
	}
	return out, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
