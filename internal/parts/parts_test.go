package parts

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
}

func TestDiscoverOrdersByPartNumber(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "My Book (10).mp3")
	touch(t, dir, "My Book (2).mp3")
	touch(t, dir, "My Book (1).mp3")
	touch(t, dir, "notes.txt")
	touch(t, dir, "cover.jpg")

	book, paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if book != "My Book" {
		t.Fatalf("unexpected book name: %q", book)
	}
	want := []string{"My Book (1).mp3", "My Book (2).mp3", "My Book (10).mp3"}
	if len(paths) != len(want) {
		t.Fatalf("got %d paths, want %d", len(paths), len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Fatalf("position %d: got %s, want %s", i, filepath.Base(paths[i]), name)
		}
	}
}

func TestDiscoverMixedExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Book (1).m4a")
	touch(t, dir, "Book (2).m4a")

	book, paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if book != "Book" || len(paths) != 2 {
		t.Fatalf("unexpected result: %q %v", book, paths)
	}
}

func TestDiscoverIgnoresOtherBooks(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Alpha (1).mp3")
	touch(t, dir, "Alpha (2).mp3")
	touch(t, dir, "Beta (1).mp3")

	book, paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if book != "Alpha" {
		t.Fatalf("unexpected book: %q", book)
	}
	if len(paths) != 2 {
		t.Fatalf("parts from another book leaked in: %v", paths)
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	if _, _, err := Discover(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without parts")
	}
}

func TestDiscoverIgnoresUnnumberedAudio(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Book.mp3")
	if _, _, err := Discover(dir); err == nil {
		t.Fatal("file without a part number should not count")
	}
}
