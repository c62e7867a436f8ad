package pipeline

import (
	"github.com/backmassage/pixr/internal/display"
	"github.com/backmassage/pixr/internal/logging"
)

// RunStats tracks aggregate counters and byte totals across a batch run
// (watch mode).
type RunStats struct {
	Processed        int
	Achieved         int
	Partial          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// Record adds one finished report. Runs that returned an error count as
// Failed via RecordError.
func (s *RunStats) Record(r Report) {
	s.Processed++
	switch r.Outcome {
	case Achieved:
		s.Achieved++
	case PartialBestEffort:
		s.Partial++
	case Failed:
		s.Failed++
		return
	}
	s.TotalInputBytes += r.OriginalSize
	s.TotalOutputBytes += r.FinalSize
}

// RecordError counts a run that ended in an error.
func (s *RunStats) RecordError() {
	s.Processed++
	s.Failed++
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// LogSummary prints the batch summary.
func (s *RunStats) LogSummary(log *logging.Logger) {
	log.Info("==============================")
	log.Info("Done: %d achieved, %d partial, %d failed", s.Achieved, s.Partial, s.Failed)
	log.Info("  Total files processed: %d", s.Processed)

	saved := s.SpaceSaved()
	if saved >= 0 {
		log.Success("  Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(s.TotalInputBytes),
			display.FormatBytes(s.TotalOutputBytes))
	} else {
		log.Warn("  Total size change: %s (overall output is larger)",
			display.FormatBytesWithSign(-saved))
	}
}
