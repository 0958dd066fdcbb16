// Package workpoint defines a named working point: the score and category
// sources it reads, and the per-category cuts it applies.
//
// A Definition is immutable once built. Its Canonical encoding covers only
// the fields that change the accept/reject decision, and its Fingerprint is
// the digest the identity registry pins against the name.
package workpoint

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/vk/wpreg/internal/cuts"
	"github.com/vk/wpreg/internal/wperr"
)

// Definition is a single working point.
type Definition struct {
	name           string
	scoreSource    string
	categorySource string
	cuts           *cuts.Table

	// Metadata. Never part of Canonical.
	approved    bool
	description string
}

// Option sets metadata on a Definition at construction time.
type Option func(*Definition)

// WithApproval marks the working point as approved for publication.
func WithApproval(approved bool) Option {
	return func(d *Definition) { d.approved = approved }
}

// WithDescription attaches a free-text description.
func WithDescription(description string) Option {
	return func(d *Definition) { d.description = description }
}

// New validates and builds a Definition.
func New(name, scoreSource, categorySource string, table *cuts.Table, opts ...Option) (*Definition, error) {
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: working point name is empty", wperr.ErrInvalidDefinition)
	case scoreSource == "":
		return nil, fmt.Errorf("%w: working point '%s' has no score source", wperr.ErrInvalidDefinition, name)
	case categorySource == "":
		return nil, fmt.Errorf("%w: working point '%s' has no category source", wperr.ErrInvalidDefinition, name)
	case table.Len() == 0:
		return nil, fmt.Errorf("%w: working point '%s' has no category cuts", wperr.ErrInvalidDefinition, name)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("working point '%s': %w", name, err)
	}

	d := &Definition{
		name:           name,
		scoreSource:    scoreSource,
		categorySource: categorySource,
		cuts:           table,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Definition) Name() string           { return d.name }
func (d *Definition) ScoreSource() string    { return d.scoreSource }
func (d *Definition) CategorySource() string { return d.categorySource }
func (d *Definition) Cuts() *cuts.Table      { return d.cuts }
func (d *Definition) Approved() bool         { return d.approved }
func (d *Definition) Description() string    { return d.description }

// Canonical returns the deterministic encoding of the decision-relevant
// fields. Strings are quoted, and thresholds use the shortest decimal form
// that parses back to the same float64.
func (d *Definition) Canonical() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "name %s\n", strconv.Quote(d.name))
	fmt.Fprintf(&buf, "score_source %s\n", strconv.Quote(d.scoreSource))
	fmt.Fprintf(&buf, "category_source %s\n", strconv.Quote(d.categorySource))
	for i, v := range d.cuts.Thresholds() {
		if v == 0 {
			v = 0 // -0 and 0 cut identically
		}
		fmt.Fprintf(&buf, "cut %d %s\n", i, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return buf.Bytes()
}

// Fingerprint is the lowercase hex SHA-256 of Canonical.
func (d *Definition) Fingerprint() string {
	sum := sha256.Sum256(d.Canonical())
	return hex.EncodeToString(sum[:])
}
