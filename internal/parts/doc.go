// Package parts discovers audiobook part files on disk and establishes the
// combine order from their numeric suffixes.
package parts
