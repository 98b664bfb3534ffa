package lua

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/plughook/plug"
)

// Watcher watches a loader's root for plug changes and reloads them on
// demand.
//
// Filesystem events are collected on the watcher's own goroutine (Run)
// and only mark plug directories dirty. The attachment set is touched
// exclusively inside Sync, which the owner must call from the
// goroutine that owns the set — the set itself is not goroutine-safe.
type Watcher struct {
	loader *Loader
	set    *plug.Set
	fsw    *fsnotify.Watcher
	logger Logger

	mu    sync.Mutex
	dirty map[string]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher over the loader's root and every
// existing plug directory beneath it.
func NewWatcher(loader *Loader, set *plug.Set) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(loader.Root()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", loader.Root(), err)
	}
	if entries, err := os.ReadDir(loader.Root()); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = fsw.Add(filepath.Join(loader.Root(), e.Name()))
			}
		}
	}

	return &Watcher{
		loader: loader,
		set:    set,
		fsw:    fsw,
		logger: loader.logger,
		dirty:  make(map[string]struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Run processes filesystem events until the context is cancelled or
// Close is called.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Error("plug watch error", "error", err)
			}
		}
	}
}

// handle marks the owning plug directory dirty for manifest and script
// changes, and starts watching newly created plug directories.
func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	if ev.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.fsw.Add(ev.Name)
			w.markDirty(ev.Name)
			return
		}
	}

	base := filepath.Base(ev.Name)
	if base != ManifestFile && filepath.Ext(base) != ".lua" {
		return
	}
	w.markDirty(filepath.Dir(ev.Name))
}

func (w *Watcher) markDirty(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty[dir] = struct{}{}
}

// Dirty returns the plug directories with pending changes, sorted.
func (w *Watcher) Dirty() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.dirty))
	for d := range w.dirty {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// Sync reloads every dirty plug into the set. Must be called from the
// goroutine that owns the set. Directories that no longer hold a
// manifest are skipped; other failures are joined into the returned
// error.
func (w *Watcher) Sync() error {
	w.mu.Lock()
	dirs := make([]string, 0, len(w.dirty))
	for d := range w.dirty {
		dirs = append(dirs, d)
	}
	w.dirty = make(map[string]struct{})
	w.mu.Unlock()
	sort.Strings(dirs)

	var errs []error
	for _, dir := range dirs {
		m, err := LoadManifest(dir)
		if err != nil {
			if errors.Is(err, ErrNoManifest) {
				continue
			}
			errs = append(errs, err)
			continue
		}
		p, err := w.loader.load(m)
		if err != nil {
			if w.logger != nil {
				w.logger.Error("plug reload failed", "plug", m.Name, "error", err)
			}
			errs = append(errs, err)
			continue
		}
		replacePlug(w.set, p)
		if w.logger != nil {
			w.logger.Debug("plug reloaded", "plug", p.Name(), "id", p.ID())
		}
	}
	return errors.Join(errs...)
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
