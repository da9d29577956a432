// Package watch regenerates the changelog when the repository's refs
// change. It uses fsnotify for efficient change detection and debounces
// bursts of ref updates into a single regeneration.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces the flurry of ref writes a single git
// operation produces.
const debounceInterval = 500 * time.Millisecond

// Watcher observes a repository's .git directory for ref changes.
type Watcher struct {
	watcher *fsnotify.Watcher
}

// New creates a Watcher over the given .git directory. HEAD, refs/heads,
// and refs/tags are observed; packed-refs updates show up as writes in the
// .git directory itself.
func New(gitDir string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	paths := []string{
		gitDir,
		filepath.Join(gitDir, "refs", "heads"),
		filepath.Join(gitDir, "refs", "tags"),
	}
	for _, p := range paths {
		if _, statErr := os.Stat(p); statErr != nil {
			continue
		}
		if addErr := watcher.Add(p); addErr != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", p, addErr)
		}
	}

	return &Watcher{watcher: watcher}, nil
}

// Run invokes fn after every debounced batch of ref changes until the
// context is cancelled. Errors from the underlying watcher end the loop.
func (w *Watcher) Run(ctx context.Context, fn func()) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				fire = timer.C
			} else {
				timer.Reset(debounceInterval)
			}
		case <-fire:
			timer = nil
			fire = nil
			fn()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching repository: %w", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
