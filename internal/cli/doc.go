// Package cli builds the wpctl command tree on top of the app package.
package cli
