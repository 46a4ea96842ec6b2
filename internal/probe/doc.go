// Package probe adapts the external media prober into uniform per-file
// records consumed by the combine planner.
package probe
