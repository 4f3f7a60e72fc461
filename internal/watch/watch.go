// Package watch keeps an entry mapping up to date while the project changes
// on disk. A Holder owns the last good mapping and rescans, debounced, on
// filesystem events. A failed rescan keeps the previous mapping.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/log"
	"github.com/htmlentry/htmlentry/internal/rootdir"
)

// Debounce is how long the watcher waits after the last event before
// rescanning, so editor save bursts trigger one scan.
const Debounce = 250 * time.Millisecond

// Holder holds the current entry mapping with thread-safe access and rescan.
type Holder struct {
	mu         sync.RWMutex
	current    entry.Map
	projectDir string
	opts       entry.Options
	logger     zerolog.Logger

	listenerMu sync.RWMutex
	listeners  []chan<- entry.Map
}

// NewHolder creates a Holder and performs the initial scan.
func NewHolder(projectDir string, opts entry.Options) (*Holder, error) {
	h := &Holder{
		projectDir: projectDir,
		opts:       opts,
		logger:     log.WithComponent("watch"),
	}
	entries, err := entry.Scan(projectDir, opts)
	if err != nil {
		return nil, err
	}
	h.current = entries
	return h, nil
}

// Get returns the current mapping.
func (h *Holder) Get() entry.Map {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe registers a channel that receives every new mapping. Sends are
// non-blocking; a slow listener misses intermediate updates, not the final one
// delivered by a later rescan.
func (h *Holder) Subscribe(ch chan<- entry.Map) {
	h.listenerMu.Lock()
	defer h.listenerMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

// Rescan rebuilds the mapping. On error the previous mapping is kept and the
// error returned.
func (h *Holder) Rescan() error {
	entries, err := entry.Scan(h.projectDir, h.opts)
	if err != nil {
		h.logger.Error().Err(err).Msg("rescan failed, keeping previous mapping")
		return err
	}

	h.mu.Lock()
	h.current = entries
	h.mu.Unlock()

	h.notify(entries)
	h.logger.Debug().Int("entries", len(entries)).Msg("rescan complete")
	return nil
}

func (h *Holder) notify(entries entry.Map) {
	h.listenerMu.RLock()
	defer h.listenerMu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- entries:
		default:
		}
	}
}

// Watch blocks until ctx is done, rescanning after filesystem changes under
// the scan root.
func (h *Holder) Watch(ctx context.Context) error {
	root, err := rootdir.Resolve(h.projectDir, h.opts.Root)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := h.addWatches(watcher, root); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New directories need their own watch in recursive mode.
			if h.opts.Recursive && ev.Has(fsnotify.Create) {
				if err := h.addWatches(watcher, ev.Name); err != nil {
					h.logger.Debug().Err(err).Str("path", ev.Name).Msg("watch new path")
				}
			}
			if timer == nil {
				timer = time.NewTimer(Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(Debounce)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn().Err(err).Msg("watcher error")
		case <-pending:
			pending = nil
			// Errors are already logged; watching continues with the
			// last good mapping.
			_ = h.Rescan()
		}
	}
}

// addWatches registers path with the watcher; in recursive mode every
// directory below it as well.
func (h *Holder) addWatches(watcher *fsnotify.Watcher, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !h.opts.Recursive {
		return watcher.Add(abs)
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
