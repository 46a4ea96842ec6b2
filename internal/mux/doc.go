// Package mux executes a combine plan against the external ffmpeg engine:
// staged per-part re-encodes, concat-demuxer joining, and a final
// stream-copy pass that imports chapters, metadata, and cover art. It also
// runs the chapter tools that split a finished audiobook apart or rewrite
// its chapter markers in place.
package mux
