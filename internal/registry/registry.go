package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/wpreg/internal/ctxlog"
	"github.com/vk/wpreg/internal/workpoint"
	"github.com/vk/wpreg/internal/wperr"
)

// Entry binds a working point name to its fingerprint.
type Entry struct {
	Name        string `json:"name" yaml:"name"`
	Fingerprint string `json:"fingerprint" yaml:"fingerprint"`
}

// ConflictError reports a name that was registered again with a different
// fingerprint. It matches wperr.ErrRegistryConflict.
type ConflictError struct {
	Name     string
	Existing string
	Proposed string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("working point '%s' is already registered with fingerprint %s, refusing redefinition with %s",
		e.Name, e.Existing, e.Proposed)
}

// Is lets errors.Is match the sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == wperr.ErrRegistryConflict
}

// Registry is an append-only name -> fingerprint map.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// New creates an empty, independent registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register binds name to fingerprint. A repeat with the same fingerprint
// succeeds without changing anything; a repeat with a different one returns
// a *ConflictError and leaves the existing entry as it was.
func (r *Registry) Register(ctx context.Context, name, fingerprint string) error {
	logger := ctxlog.FromContext(ctx)
	if name == "" || fingerprint == "" {
		return fmt.Errorf("%w: registry entry needs a name and a fingerprint (name=%q)", wperr.ErrInvalidDefinition, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[name]; ok {
		if existing.Fingerprint != fingerprint {
			return &ConflictError{Name: name, Existing: existing.Fingerprint, Proposed: fingerprint}
		}
		logger.Debug("Working point already registered with identical fingerprint.", "name", name)
		return nil
	}

	logger.Debug("Registering working point.", "name", name, "fingerprint", fingerprint)
	r.entries[name] = Entry{Name: name, Fingerprint: fingerprint}
	return nil
}

// RegisterDefinition registers a definition under its own fingerprint.
func (r *Registry) RegisterDefinition(ctx context.Context, def *workpoint.Definition) error {
	return r.Register(ctx, def.Name(), def.Fingerprint())
}

// Lookup returns the fingerprint registered for name.
func (r *Registry) Lookup(name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", wperr.ErrUnknownWorkingPoint, name)
	}
	return entry.Fingerprint, nil
}

// Entries returns a snapshot sorted by name.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of registered names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Reset empties the registry. Only tests should call this.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]Entry)
}
