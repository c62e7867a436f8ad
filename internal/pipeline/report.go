package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/pixr/internal/display"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/probe"
)

// Outcome classifies a finished run.
type Outcome int

const (
	// Achieved: output written and within the target (or no target applies).
	Achieved Outcome = iota
	// PartialBestEffort: output written but larger than the target.
	PartialBestEffort
	// Failed: nothing was written.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Achieved:
		return "achieved"
	case PartialBestEffort:
		return "partial"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Report is the result of one command run.
type Report struct {
	Command      string
	Input        string
	Output       string // empty when Outcome is Failed
	Outcome      Outcome
	OriginalSize int64
	FinalSize    int64
	TargetSize   int64 // target-size only
	Quality      int   // quality of the written encode; 0 for lossless formats
	Note         string
	FloorHit     bool
	Probes       int

	OriginalDims string // rescale only
	FinalDims    string

	Segments []probe.Segment // anonymize only
}

// qualityInfo is the parenthesised quality or strategy note shown in
// target-size messages.
func (r Report) qualityInfo() string {
	if r.Note != "" {
		return "(" + r.Note + ")"
	}
	return fmt.Sprintf("(quality: %d)", r.Quality)
}

// LogReport prints the user-facing result line(s) for r.
func LogReport(log *logging.Logger, r Report, verbose bool) {
	switch r.Command {
	case "target-size":
		logTargetSize(log, r)
	case "rescale":
		log.Success("Rescaled %s (%s) to %s and saved to %s", r.Input, r.OriginalDims, r.FinalDims, r.Output)
	case "convert":
		logConvert(log, r, verbose)
	case "anonymize":
		log.Success("Successfully anonymized %s -> %s", r.Input, r.Output)
	default:
		log.Info("%s: %s -> %s (%s)", r.Command, r.Input, r.Output, r.Outcome)
	}
}

func logTargetSize(log *logging.Logger, r Report) {
	switch r.Outcome {
	case Achieved:
		log.Success("Target size achieved: %s → %s %s. Output: %s",
			display.FormatKB(r.OriginalSize), display.FormatKB(r.FinalSize), r.qualityInfo(), r.Output)
	case PartialBestEffort:
		log.Warn("Could not meet target of %s while maintaining min quality. Best result: %s %s. Output: %s",
			display.FormatKB(r.TargetSize), display.FormatKB(r.FinalSize), r.qualityInfo(), r.Output)
	case Failed:
		log.Error("Could not meet target of %s. Smallest possible size is %s.",
			display.FormatKB(r.TargetSize), display.FormatKB(r.FinalSize))
	}
}

// logConvert prints a size breakdown when verbose or when the size moved by
// more than 5%, otherwise a single line.
func logConvert(log *logging.Logger, r Report, verbose bool) {
	delta := r.FinalSize - r.OriginalSize
	if !verbose && abs64(delta)*100 <= r.OriginalSize*5 {
		log.Success("Successfully converted %s to %s", r.Input, r.Output)
		return
	}
	log.Success("Conversion complete: %s → %s", filepath.Base(r.Input), filepath.Base(r.Output))
	log.Info("  Original:  %s", display.FormatBytes(r.OriginalSize))
	log.Info("  Converted: %s", display.FormatBytes(r.FinalSize))
	switch {
	case delta < 0:
		log.Info("  Reduced by %s (%s)", display.FormatBytes(-delta), display.FormatPercentChange(r.OriginalSize, r.FinalSize))
	case delta > 0:
		log.Info("  Increased by %s (%s)", display.FormatBytes(delta), display.FormatPercentChange(r.OriginalSize, r.FinalSize))
	default:
		log.Info("  Same file size")
	}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
