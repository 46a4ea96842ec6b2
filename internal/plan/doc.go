// Package plan resolves everything a combine run needs before any media
// bytes are written: encoding parameters, chapter titles, the chapter
// timeline, merged metadata, and the immutable plan that composes them.
package plan
