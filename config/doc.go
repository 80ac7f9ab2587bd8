// Package config loads dlsys settings from a TOML file.
//
// Load starts from Default, overlays the file if it exists, expands "~" in
// path fields and validates the result. Command-line flags are applied on top
// by the caller.
package config
