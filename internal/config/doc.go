// Package config loads, normalizes, and validates bookbind's TOML
// configuration. A missing file is not an error; defaults apply.
package config
