package pipeline

import (
	"fmt"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/naming"
)

// Execute dispatches cmd to its runner.
func Execute(cfg *config.Config, cmd config.Command, log *logging.Logger) (Report, error) {
	switch c := cmd.(type) {
	case config.TargetSize:
		return TargetSize(cfg, c, log)
	case config.Rescale:
		return Rescale(cfg, c, log)
	case config.Convert:
		return Convert(cfg, c, log)
	case config.Anonymize:
		return Anonymize(cfg, c, log)
	}
	return Report{}, fmt.Errorf("unknown command %T", cmd)
}

// Batch runs target-size over many files (watch mode) with one collision
// resolver and shared stats.
type Batch struct {
	cfg      *config.Config
	log      *logging.Logger
	resolver *naming.CollisionResolver
	Stats    RunStats
}

// NewBatch creates an empty batch.
func NewBatch(cfg *config.Config, log *logging.Logger) *Batch {
	return &Batch{cfg: cfg, log: log, resolver: naming.NewCollisionResolver()}
}

// TargetSize processes one file, logs the result and records it in Stats.
func (b *Batch) TargetSize(path string, maxSize config.Size, wild bool) (Report, error) {
	cmd := config.TargetSize{InputPath: path, MaxSize: maxSize, Wild: wild}
	r, err := runTargetSize(b.cfg, cmd, b.log, b.resolver.Resolve)
	if err != nil {
		b.log.Error("%s: %v", path, err)
		b.Stats.RecordError()
		return r, err
	}
	LogReport(b.log, r, b.cfg.Verbose)
	b.Stats.Record(r)
	return r, nil
}
