// Package config defines the format-agnostic model of a working point
// configuration: the discriminant models that produce scores, and the
// working points that cut on them. Concrete loaders, such as the HCL one,
// and compiled-in fragments both feed the same Model.
package config
