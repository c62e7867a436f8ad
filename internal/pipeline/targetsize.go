package pipeline

import (
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/display"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/naming"
	"github.com/backmassage/pixr/internal/probe"
	"github.com/backmassage/pixr/internal/strategy"
)

// resolveFunc maps a requested output path to the one actually written.
type resolveFunc func(input, output string) string

func keepPath(_, output string) string { return output }

// TargetSize re-encodes the input so that it fits within cmd.MaxSize,
// choosing the strategy from the detected format. Not meeting the target is
// an outcome (PartialBestEffort), not an error.
func TargetSize(cfg *config.Config, cmd config.TargetSize, log *logging.Logger) (Report, error) {
	return runTargetSize(cfg, cmd, log, keepPath)
}

func runTargetSize(cfg *config.Config, cmd config.TargetSize, log *logging.Logger, resolve resolveFunc) (Report, error) {
	src, err := openInput(cmd.InputPath)
	if err != nil {
		return Report{}, err
	}
	if err := checkTargetSizeInput(src); err != nil {
		return Report{}, err
	}

	strat, err := strategy.NewSelector(cfg).Select(src.Format)
	if err != nil {
		return Report{}, err
	}
	log.Debug(cfg.Verbose, "%s: %s %s %s, %d frame(s), %s; strategy %s",
		cmd.InputPath, src.Format, src.Resolution(), src.Mode, src.Frames,
		display.FormatBytes(src.Size), strat.Name())

	outcome, err := strat.Optimize(src, cmd.MaxSize.Bytes, cmd.Wild)
	if err != nil {
		return Report{}, err
	}
	for _, s := range outcome.Trace {
		log.Debug(cfg.Verbose, "  probe quality %d: %s (fits: %v)", s.Quality, display.FormatBytes(int64(s.Size)), s.Met)
	}
	if outcome.FloorHit {
		log.Debug(cfg.Verbose, "  quality floor reached after %d probe(s)", outcome.Probes)
	}

	r := Report{
		Command:      cmd.Name(),
		Input:        cmd.InputPath,
		OriginalSize: src.Size,
		TargetSize:   cmd.MaxSize.Bytes,
		FloorHit:     outcome.FloorHit,
		Probes:       outcome.Probes,
	}
	chosen := outcome.Chosen()
	if chosen == nil || len(chosen.Payload) == 0 {
		r.Outcome = Failed
		if outcome.Smallest != nil {
			r.FinalSize = int64(outcome.Smallest.Size)
		}
		return r, nil
	}

	out := naming.OutputPath(cmd.InputPath, cmd.OutputPath, naming.SuffixTargeted, "."+src.Format.Extension())
	out = resolve(cmd.InputPath, out)
	if err := writeAtomic(out, chosen.Payload); err != nil {
		return Report{}, err
	}

	r.Output = out
	r.FinalSize = int64(len(chosen.Payload))
	r.Quality = chosen.Quality
	if p, ok := strat.(strategy.Placeholder); ok {
		r.Note = p.Note
	}
	r.Outcome = Achieved
	if r.FinalSize > r.TargetSize {
		r.Outcome = PartialBestEffort
	}
	return r, nil
}

// isAnimatedGIF reports whether src needs the multi-frame code paths.
func isAnimatedGIF(src *probe.Image) bool {
	return src.Format == probe.FormatGIF && src.Animated
}
