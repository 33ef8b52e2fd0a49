package fswatch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/solvecopy/pkg/errors"
)

var fs = afero.NewOsFs()

// Watch watches the files directly inside `dir`. After one or more changes,
// it sends a single event on the returned channel once `dir` has been quiet
// for `quiet`. This way, a browser writing a download in several steps only
// triggers one copy.
// The channel is closed after ctx is cancelled.
func Watch(ctx context.Context, dir string, clock clockwork.Clock, quiet time.Duration) (<-chan struct{}, error) {
	fi, err := fs.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound{Path: dir}
		}
		return nil, errors.WithContext(err, "stat")
	}

	if !fi.IsDir() {
		return nil, errors.NewFriendlyError("Cannot watch %q: it is not a directory.", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WithContext(err, "create watcher")
	}

	if err := watcher.Add(dir); err != nil {
		// Close the watcher so that we release its file handles.
		if err := watcher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file watcher")
		}
		return nil, errors.WithContext(err, fmt.Sprintf("watch %q", dir))
	}

	go func() {
		<-ctx.Done()
		if err := watcher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file watcher")
		}
	}()

	go func() {
		for err := range watcher.Errors {
			log.WithError(err).WithField("dir", dir).Warn("File watcher error")
		}
	}()

	return debounce(ctx, clock, quiet, combineUpdates(watcher.Events)), nil
}

// combineUpdates collapses events into a channel of notifications. Pending
// notifications are merged, so slow consumers don't block the watcher.
// Permission changes are ignored since they never produce new files.
func combineUpdates(updates <-chan fsnotify.Event) chan struct{} {
	combined := make(chan struct{}, 1)
	go func() {
		defer close(combined)
		for event := range updates {
			if event.Op == fsnotify.Chmod {
				continue
			}

			log.WithField("event", event.String()).Debug("Source directory changed")
			select {
			case combined <- struct{}{}:
			default:
			}
		}
	}()
	return combined
}

// debounce sends on the returned channel once `quiet` has passed since the
// most recent event.
func debounce(ctx context.Context, clock clockwork.Clock, quiet time.Duration,
	events <-chan struct{}) <-chan struct{} {

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)

		var timer <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				timer = clock.After(quiet)
			case <-timer:
				timer = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
