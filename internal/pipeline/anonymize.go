package pipeline

import (
	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/naming"
	"github.com/backmassage/pixr/internal/probe"
)

// Anonymize re-encodes the decoded pixels in the source format. Nothing but
// pixel data (and GIF timing) reaches the output, so every metadata segment
// is dropped.
func Anonymize(cfg *config.Config, cmd config.Anonymize, log *logging.Logger) (Report, error) {
	src, err := openInput(cmd.InputPath)
	if err != nil {
		return Report{}, err
	}

	segs := probe.Metadata(src)
	if len(segs) == 0 {
		log.Debug(cfg.Verbose, "%s: no metadata segments found", cmd.InputPath)
	} else {
		log.Info("Stripping %d metadata segment(s) from %s:", len(segs), cmd.InputPath)
		for _, s := range segs {
			log.Info("  %s", s)
		}
	}

	var data []byte
	if src.Format == probe.FormatGIF {
		g, err := codec.DecodeGIF(src.Data)
		if err != nil {
			return Report{}, err
		}
		if data, err = codec.EncodeGIF(g); err != nil {
			return Report{}, err
		}
	} else {
		img, err := codec.Decode(src.Data)
		if err != nil {
			return Report{}, err
		}
		if data, err = codec.Encode(src.Format, img, cfg.DefaultQuality); err != nil {
			return Report{}, err
		}
	}

	out := naming.OutputPath(cmd.InputPath, cmd.OutputPath, naming.SuffixAnonymized, "")
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
		Segments:     segs,
	}, nil
}
