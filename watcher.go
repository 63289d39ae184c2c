package dropzone

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/gobeaver/dropzone/filevalidator"
)

// DefaultDebounce is how long Watch waits after the last file event
// before submitting the collected files as one batch.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch
type WatchOptions struct {
	// Pattern is a glob matched against base names. Empty matches all.
	Pattern string

	// Debounce groups bursts of file events into one drop.
	Debounce time.Duration

	// OnBatch, when set, receives the outcome of every submitted batch.
	OnBatch func(*filevalidator.Result, error)
}

// Watch treats dir as a drop target: files created there are grouped by
// the debounce window and submitted as one drop gesture each. A file is
// submitted once writes to it have been quiet for the window; later writes
// to a submitted file are ignored. It blocks until ctx is done.
func (d *Dropzone) Watch(ctx context.Context, dir string, opts WatchOptions) error {
	matcher, err := compileGlob(opts.Pattern)
	if err != nil {
		return err
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log := d.log.WithField("dir", dir)
	log.Info("watching for files")

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	var pending []string
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !matcher.Match(filepath.Base(event.Name)) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create):
				if !seen[event.Name] {
					seen[event.Name] = true
					pending = append(pending, event.Name)
				}
			case event.Has(fsnotify.Write):
				// Writes only keep a created file settling; a file
				// already submitted is not submitted again.
				if !seen[event.Name] {
					continue
				}
			default:
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")

		case <-timer.C:
			batch := d.collect(log, pending)
			pending = nil
			clear(seen)
			if len(batch) == 0 {
				continue
			}
			d.DragEnter()
			result, err := d.Drop(ctx, batch)
			if opts.OnBatch != nil {
				opts.OnBatch(result, err)
			}
		}
	}
}

func (d *Dropzone) collect(log logrus.FieldLogger, paths []string) []*filevalidator.Candidate {
	batch := make([]*filevalidator.Candidate, 0, len(paths))
	for _, p := range paths {
		c, err := filevalidator.FromPath(p)
		if err != nil {
			// Removed again or a directory
			log.WithError(err).WithField("path", p).Debug("skipping path")
			continue
		}
		batch = append(batch, c)
	}
	return batch
}
