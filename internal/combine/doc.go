// Package combine orchestrates a full run: part discovery, probing,
// planning, execution against the mux engine, and optional cleanup of the
// source parts.
package combine
