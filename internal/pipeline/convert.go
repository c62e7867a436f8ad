package pipeline

import (
	"github.com/backmassage/pixr/internal/codec"
	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/naming"
	"github.com/backmassage/pixr/internal/probe"
)

// Convert re-encodes the input as cmd.Target. JPEG targets are flattened
// onto white; WebP from a JPEG source adjusts quality (see webpQualityForJPEG).
func Convert(cfg *config.Config, cmd config.Convert, log *logging.Logger) (Report, error) {
	src, err := openInput(cmd.InputPath)
	if err != nil {
		return Report{}, err
	}
	format := targetCodecFormat(cmd.Target)
	quality := cmd.Quality
	if format == probe.FormatWebP && src.Format == probe.FormatJPEG {
		quality = webpQualityForJPEG(quality)
		log.Debug(cfg.Verbose, "JPEG source: WebP quality %d -> %d", cmd.Quality, quality)
	}

	var data []byte
	if format == probe.FormatGIF && isAnimatedGIF(src) {
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
		if format == probe.FormatJPEG {
			if src.Mode.HasAlpha() {
				log.Debug(cfg.Verbose, "Flattening %s onto white for JPEG", src.Mode)
			}
			img = codec.FlattenWhite(img)
		}
		if data, err = codec.Encode(format, img, quality); err != nil {
			return Report{}, err
		}
	}

	out := naming.OutputPath(cmd.InputPath, cmd.OutputPath, naming.SuffixConverted, cmd.Target.Extension())
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
		Quality:      quality,
	}, nil
}

// targetCodecFormat maps a convert target to the codec format.
func targetCodecFormat(t config.TargetFormat) probe.Format {
	switch t {
	case config.TargetJPG, config.TargetJPEG:
		return probe.FormatJPEG
	case config.TargetPNG:
		return probe.FormatPNG
	case config.TargetWebP:
		return probe.FormatWebP
	case config.TargetBMP:
		return probe.FormatBMP
	case config.TargetTIFF:
		return probe.FormatTIFF
	case config.TargetGIF:
		return probe.FormatGIF
	}
	return probe.Format(t)
}

// webpQualityForJPEG keeps near-lossless requests at full fidelity and
// otherwise backs quality off by 5, capped at 80, for JPEG-sourced WebP.
func webpQualityForJPEG(q int) int {
	if q >= 90 {
		return codec.MaxQuality
	}
	return max(min(q-5, 80), codec.MinQuality)
}
