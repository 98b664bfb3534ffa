package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/plughook/config"
	"github.com/dshills/plughook/plug"
)

// Logger is the interface for loader and watcher logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Loader discovers and loads scripted plugs from a directory tree.
// Each plug lives in its own subdirectory of the root, holding a
// manifest.json and the script it names.
type Loader struct {
	root      string
	logger    Logger
	stateOpts []StateOption
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger. A nil logger means silent.
func WithLogger(l Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithStateOptions sets the options applied to every Lua state the
// loader creates.
func WithStateOptions(opts ...StateOption) LoaderOption {
	return func(ld *Loader) {
		ld.stateOpts = opts
	}
}

// NewLoader creates a loader rooted at a plug directory.
func NewLoader(root string, opts ...LoaderOption) *Loader {
	ld := &Loader{root: root}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// NewLoaderFromConfig creates a loader rooted at the configured plug
// directory, with the configured execution timeout applied to every
// state it creates.
func NewLoaderFromConfig(cfg config.Config, opts ...LoaderOption) *Loader {
	opts = append([]LoaderOption{
		WithStateOptions(WithTimeout(cfg.Lua.Timeout())),
	}, opts...)
	return NewLoader(cfg.Lua.PlugDir, opts...)
}

// Root returns the loader's plug root directory.
func (l *Loader) Root() string {
	return l.root
}

// Discover returns the manifests of every plug directory under the
// root. Subdirectories without a manifest are skipped.
func (l *Loader) Discover() ([]*Manifest, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("reading plug root %s: %w", l.root, err)
	}

	var manifests []*Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := LoadManifest(filepath.Join(l.root, e.Name()))
		if err != nil {
			if errors.Is(err, ErrNoManifest) {
				continue
			}
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

// Load loads the plug in a single directory on a fresh Lua state.
func (l *Loader) Load(dir string) (*Plug, error) {
	m, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}
	return l.load(m)
}

// LoadAll loads every discovered plug into the set, keyed by manifest
// name. Individual failures are logged and joined into the returned
// error; loading continues past them.
func (l *Loader) LoadAll(set *plug.Set) error {
	manifests, err := l.Discover()
	if err != nil {
		return err
	}

	var errs []error
	for _, m := range manifests {
		p, err := l.load(m)
		if err != nil {
			l.logError("plug load failed", "plug", m.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		replacePlug(set, p)
		l.logDebug("plug loaded", "plug", p.Name(), "id", p.ID())
	}
	return errors.Join(errs...)
}

func (l *Loader) load(m *Manifest) (*Plug, error) {
	state := NewState(l.stateOpts...)
	p, err := New(m, state)
	if err != nil {
		state.Close()
		return nil, err
	}
	return p, nil
}

func (l *Loader) logDebug(msg string, keysAndValues ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, keysAndValues...)
	}
}

func (l *Loader) logError(msg string, keysAndValues ...any) {
	if l.logger != nil {
		l.logger.Error(msg, keysAndValues...)
	}
}

// replacePlug installs a plug under its manifest name, closing any
// scripted plug it displaces. Replacement keeps the original position
// in the set's iteration order.
func replacePlug(set *plug.Set, p *Plug) {
	if old, err := set.Get(p.Name()); err == nil {
		if lp, ok := old.(*Plug); ok && lp != p {
			lp.Close()
		}
	}
	set.Add(p.Name(), p)
}
