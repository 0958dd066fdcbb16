package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and translates it into
	// the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Fragment is a configuration fragment compiled into the binary. Fragments
// and loaded files contribute to the same Model.
type Fragment interface {
	Name() string
	Contribute(ctx context.Context, m *Model) error
}
