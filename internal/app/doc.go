// Package app contains the configuration-build pipeline. It defines the App
// struct, its configuration, and the assembly pass that turns loaded files
// and compiled-in fragments into producer configs, selection configs and
// registry entries, decoupled from any entrypoint like the CLI.
package app
