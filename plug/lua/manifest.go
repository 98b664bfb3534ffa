package lua

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Manifest and phase constants.
const (
	// ManifestFile is the manifest name inside a plug directory.
	ManifestFile = "manifest.json"

	// DefaultMain is the script loaded when the manifest names none.
	DefaultMain = "init.lua"

	// PhasePre marks a hook that runs before the operation.
	PhasePre = "pre"

	// PhasePost marks a hook that runs after the operation.
	PhasePost = "post"
)

var nameRE = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// HookDecl declares one scripted hook: the operation name it
// intercepts, the phase, and the Lua global implementing it.
type HookDecl struct {
	Op    string `json:"op"`
	Phase string `json:"phase"`
	Fn    string `json:"fn"`
}

// Manifest describes a scripted plug.
type Manifest struct {
	Name        string     `json:"name"`        // Unique identifier (e.g., "anchors")
	Version     string     `json:"version"`     // Semver (e.g., "0.1.0")
	Description string     `json:"description"` // Short description
	Author      string     `json:"author"`      // Author name or org
	Main        string     `json:"main"`        // Relative path to the Lua script (default: "init.lua")
	Hooks       []HookDecl `json:"hooks"`       // Hook declarations

	// Internal: path to the plug directory
	path string
}

// LoadManifest reads and validates the manifest in a plug directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, dir)
		}
		return nil, fmt.Errorf("reading manifest in %s: %w", dir, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, dir, err)
	}
	if m.Main == "" {
		m.Main = DefaultMain
	}
	m.path = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if !nameRE.MatchString(m.Name) {
		return fmt.Errorf("%w: name %q must match %s", ErrInvalidManifest, m.Name, nameRE)
	}
	for _, h := range m.Hooks {
		if h.Op == "" || h.Fn == "" {
			return fmt.Errorf("%w: hook declarations need op and fn", ErrInvalidManifest)
		}
		if h.Phase != PhasePre && h.Phase != PhasePost {
			return fmt.Errorf("%w: hook phase %q must be %q or %q", ErrInvalidManifest, h.Phase, PhasePre, PhasePost)
		}
	}
	return nil
}

// Path returns the plug directory.
func (m *Manifest) Path() string {
	return m.path
}

// ScriptPath returns the absolute path of the main script.
func (m *Manifest) ScriptPath() string {
	return filepath.Join(m.path, m.Main)
}
