// Package registry provides the identity registry for working points.
//
// The registry maps each published working point name to the fingerprint of
// its decision-relevant content. It only grows: a name is inserted once, a
// repeat registration with the same fingerprint is a no-op, and a repeat
// with a different fingerprint is rejected as a conflict. This keeps a name
// bound to exactly one set of cuts for the lifetime of the process, so a
// change in cuts has to come with a new name.
//
// Default returns the process-wide instance. It starts empty, lives for the
// whole process and is never persisted. Tests use New for an isolated
// instance or Reset on the default one.
package registry
