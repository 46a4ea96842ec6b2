// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams, chapters, and format
//   - Stream: individual stream properties including disposition flags
//   - Chapter: chapter marker offsets and tags
//   - Format: container-level metadata (duration, size, bitrate, tags)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result provide convenient access to duration, bitrate,
// sample rate, and cover art detection.
package ffprobe
