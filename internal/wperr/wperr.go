// Package wperr holds the sentinel errors shared by every stage of working
// point assembly. Stages wrap these with context so callers can match them
// with errors.Is regardless of where the failure happened.
package wperr

import "errors"

var (
	// ErrMalformedCutTable: category indices are not contiguous from 0, or a
	// threshold is not a finite number.
	ErrMalformedCutTable = errors.New("malformed cut table")

	// ErrInvalidDefinition: a working point or model descriptor is missing a
	// required field.
	ErrInvalidDefinition = errors.New("invalid definition")

	ErrCategoryOutOfRange = errors.New("category out of range")
	ErrMissingNamedInput  = errors.New("missing named input")

	// ErrCategoryCountMismatch: the number of weight files or cuts differs
	// from the number of categories the model declares.
	ErrCategoryCountMismatch = errors.New("category count mismatch")

	// ErrRegistryConflict: a name was registered again with a different
	// fingerprint.
	ErrRegistryConflict = errors.New("registry conflict")

	ErrUnknownWorkingPoint = errors.New("unknown working point")
)
