package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/wpreg/internal/ctxlog"
	"github.com/vk/wpreg/internal/workpoint"
)

// RegisterAll registers a batch of definitions atomically. Every definition
// is checked against the registry and against the rest of the batch first;
// if any check fails nothing is inserted and all failures are returned
// together.
func (r *Registry) RegisterAll(ctx context.Context, defs []*workpoint.Definition) error {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	pending := make(map[string]string, len(defs))
	for _, def := range defs {
		name, fp := def.Name(), def.Fingerprint()

		existing, ok := r.entries[name]
		if !ok {
			existing.Fingerprint, ok = pending[name]
		}
		if ok && existing.Fingerprint != fp {
			errs = append(errs, &ConflictError{Name: name, Existing: existing.Fingerprint, Proposed: fp})
			continue
		}
		pending[name] = fp
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}

	added := 0
	for name, fp := range pending {
		if _, ok := r.entries[name]; ok {
			logger.Debug("Working point already registered with identical fingerprint.", "name", name)
			continue
		}
		r.entries[name] = Entry{Name: name, Fingerprint: fp}
		added++
		logger.Debug("Registered working point.", "name", name, "fingerprint", fp)
	}
	logger.Info("Registry updated.", "added", added, "total", len(r.entries))
	return nil
}
