// Package logging constructs slog loggers from application configuration and
// re-exports the attribute helpers used across bookbind.
package logging
