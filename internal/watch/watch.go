// Package watch runs target-size over a directory: existing images first,
// then every new or rewritten image as fsnotify reports it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/backmassage/pixr/internal/config"
	"github.com/backmassage/pixr/internal/logging"
	"github.com/backmassage/pixr/internal/pipeline"
)

// ErrNotDirectory is returned by New when the watch path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Watcher processes images dropped into one directory.
type Watcher struct {
	cfg     *config.Config
	log     *logging.Logger
	dir     string
	maxSize config.Size
	wild    bool

	batch   *pipeline.Batch
	fs      *fsnotify.Watcher
	ready   chan string
	done    chan struct{}
	pending map[string]*time.Timer
	seen    map[string]stamp
}

// stamp identifies one version of a file so rewrites are processed again
// and duplicate events are not.
type stamp struct {
	size    int64
	modTime time.Time
}

// New starts watching dir. Events that arrive before Run are buffered by
// the kernel and handled once Run starts.
func New(cfg *config.Config, log *logging.Logger, dir string, maxSize config.Size, wild bool) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pipeline.ErrInputNotFound, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		cfg:     cfg,
		log:     log,
		dir:     dir,
		maxSize: maxSize,
		wild:    wild,
		batch:   pipeline.NewBatch(cfg, log),
		fs:      fsw,
		ready:   make(chan string, 16),
		done:    make(chan struct{}),
		pending: make(map[string]*time.Timer),
		seen:    make(map[string]stamp),
	}, nil
}

// Stats returns the counters accumulated so far.
func (w *Watcher) Stats() pipeline.RunStats {
	return w.batch.Stats
}

// Run processes the existing images, then handles events until ctx is
// cancelled. All processing happens on the calling goroutine. The summary
// is logged before Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	if err := w.processExisting(ctx); err != nil {
		return err
	}
	defer w.batch.Stats.LogSummary(w.log)

	mode := "normal"
	if w.wild {
		mode = "wild"
	}
	w.log.Info("Watching %s for new images (max size %s, %s mode)", w.dir, w.maxSize, mode)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watcher error: %v", err)

		case path := <-w.ready:
			delete(w.pending, path)
			w.process(path)
		}
	}
}

func (w *Watcher) processExisting(ctx context.Context) error {
	files, err := pipeline.Discover(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", w.dir, err)
	}
	if len(files) > 0 {
		w.log.Info("Processing %d existing image(s) in %s", len(files), w.dir)
	}
	for _, path := range files {
		if ctx.Err() != nil {
			return nil
		}
		w.process(path)
	}
	return nil
}

// handleEvent (re)arms the debounce timer for create and write events on
// candidate images.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !pipeline.IsCandidate(event.Name) {
		return
	}
	w.log.Debug(w.cfg.Verbose, "Event %s: %s", event.Op, event.Name)

	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(w.cfg.WatchDebounce, func() {
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

// process runs target-size on path unless this exact version was already
// handled.
func (w *Watcher) process(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	st := stamp{size: info.Size(), modTime: info.ModTime()}
	if prev, ok := w.seen[path]; ok && prev.size == st.size && prev.modTime.Equal(st.modTime) {
		w.log.Debug(w.cfg.Verbose, "Skipping unchanged %s", path)
		return
	}
	w.seen[path] = st

	// Errors are logged and counted by the batch.
	_, _ = w.batch.TargetSize(path, w.maxSize, w.wild)
}

func (w *Watcher) close() {
	close(w.done)
	for _, t := range w.pending {
		t.Stop()
	}
	w.fs.Close()
}
