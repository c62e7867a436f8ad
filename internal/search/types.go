package search

// ProbeResult is one trial encode: the quality used, the encoded size in
// bytes and the encoded bytes themselves.
type ProbeResult struct {
	Quality int
	Size    int
	Payload []byte
}

// Step records one iteration of the search for verbose reporting.
type Step struct {
	Quality int
	Size    int
	Met     bool
}

// Outcome is the result of one search run. Smallest is always set after at
// least one probe; Best only when some probe met the target.
type Outcome struct {
	Best     *ProbeResult
	Smallest *ProbeResult
	FloorHit bool
	Probes   int
	Trace    []Step
}

// Met reports whether any probe fit within the target.
func (o Outcome) Met() bool { return o.Best != nil }

// Chosen returns the result that should be written: Best when the target was
// met, otherwise Smallest. Nil only when nothing was probed.
func (o Outcome) Chosen() *ProbeResult {
	if o.Best != nil {
		return o.Best
	}
	return o.Smallest
}

// BestPayload returns the best encode, or nil.
func (o Outcome) BestPayload() []byte {
	if o.Best == nil {
		return nil
	}
	return o.Best.Payload
}

// BestQuality returns the quality of the best encode, or 0.
func (o Outcome) BestQuality() int {
	if o.Best == nil {
		return 0
	}
	return o.Best.Quality
}

// SmallestPayload returns the smallest encode seen, or nil.
func (o Outcome) SmallestPayload() []byte {
	if o.Smallest == nil {
		return nil
	}
	return o.Smallest.Payload
}

// SmallestQuality returns the quality of the smallest encode seen, or 0.
func (o Outcome) SmallestQuality() int {
	if o.Smallest == nil {
		return 0
	}
	return o.Smallest.Quality
}
