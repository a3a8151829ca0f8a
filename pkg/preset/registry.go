package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// SourceBuiltin marks presets compiled into the binary.
const SourceBuiltin = "builtin"

// ErrNotFound is returned by lookups of an unknown preset id.
var ErrNotFound = errors.New("preset not found")

// Lookup resolves presets. Registry implements it in memory; the SQLite
// store implements it with persisted overrides.
type Lookup interface {
	GetPreset(id string) (Preset, error)
	ListPresets() ([]Preset, error)
}

// Registry holds the built-in presets overlaid with the manifests found in
// a directory. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
	dir     string
}

// NewRegistry creates an empty registry for dir. An empty dir means
// built-ins only.
func NewRegistry(dir string) *Registry {
	return &Registry{
		presets: make(map[string]Preset),
		dir:     dir,
	}
}

// Load rebuilds the registry: built-ins first, then every *.yaml / *.yml
// file of the directory, which may override a built-in by id. A missing
// directory is not an error.
func (r *Registry) Load() error {
	next := make(map[string]Preset)
	for _, p := range Builtins() {
		p.Source = SourceBuiltin
		if err := p.Validate(); err != nil {
			return err
		}
		next[p.ID] = p
	}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read presets dir %s: %w", r.dir, err)
		}
		for _, entry := range entries {
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			p, err := LoadManifest(filepath.Join(r.dir, entry.Name()))
			if err != nil {
				return err
			}
			next[p.ID] = *p
		}
	}

	r.mu.Lock()
	r.presets = next
	r.mu.Unlock()
	return nil
}

// Reload re-reads the directory (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Get returns the preset with the given id, case-insensitive.
func (r *Registry) Get(id string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[strings.ToLower(strings.TrimSpace(id))]
	return p, ok
}

// List returns all presets sorted by id.
func (r *Registry) List() []Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Preset, 0, len(r.presets))
	for _, p := range r.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of loaded presets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.presets)
}

// GetPreset is Get with an ErrNotFound error, satisfying Lookup.
func (r *Registry) GetPreset(id string) (Preset, error) {
	p, ok := r.Get(id)
	if !ok {
		return Preset{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListPresets is List, satisfying Lookup.
func (r *Registry) ListPresets() ([]Preset, error) {
	return r.List(), nil
}
