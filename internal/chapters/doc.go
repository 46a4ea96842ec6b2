// Package chapters models the chapter structure of finished audiobook files:
// probing it, parsing replacement chapter lists, and normalizing both into
// timeline entries for display, extraction, and rewriting.
package chapters
