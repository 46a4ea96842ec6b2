package plan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveTitlesGeneratedBelowThreshold(t *testing.T) {
	titles, err := ResolveTitles(4, "", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Part 1", "Part 2", "Part 3", "Part 4"}
	if len(titles) != len(want) {
		t.Fatalf("got %d titles, want %d", len(titles), len(want))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("title %d: got %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestResolveTitlesGeneratedAtThreshold(t *testing.T) {
	// The comparison is strict less-than: n equal to the threshold already
	// uses the Chapter label.
	titles, err := ResolveTitles(6, "", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles[0] != "Chapter 1" || titles[5] != "Chapter 6" {
		t.Fatalf("expected Chapter labels, got %v", titles)
	}

	titles, err = ResolveTitles(8, "", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles[7] != "Chapter 8" {
		t.Fatalf("expected Chapter labels, got %v", titles)
	}
}

func writeTitles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titles.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write titles file: %v", err)
	}
	return path
}

func TestResolveTitlesFromFile(t *testing.T) {
	path := writeTitles(t, "1. Prologue\n2. Getting Started\n\n   \nThe End\n\n")
	titles, err := ResolveTitles(3, path, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Prologue", "Getting Started", "The End"}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("title %d: got %q, want %q", i, titles[i], want[i])
		}
	}
}

func TestResolveTitlesCountMismatch(t *testing.T) {
	path := writeTitles(t, "One\nTwo\nThree\n")
	_, err := ResolveTitles(4, path, 6)
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	var mismatch *TitleCountMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TitleCountMismatchError, got %T", err)
	}
	if mismatch.Got != 3 || mismatch.Want != 4 {
		t.Fatalf("counts wrong: got %d/%d", mismatch.Got, mismatch.Want)
	}
	msg := err.Error()
	if !strings.Contains(msg, "3") || !strings.Contains(msg, "4") {
		t.Fatalf("message should state both counts: %s", msg)
	}
}

func TestResolveTitlesMissingFile(t *testing.T) {
	if _, err := ResolveTitles(2, filepath.Join(t.TempDir(), "absent.txt"), 6); err == nil {
		t.Fatal("expected error for missing titles file")
	}
}

func TestResolveTitlesKeepsUnnumberedLines(t *testing.T) {
	path := writeTitles(t, "Introduction\n12.5 Miles Later\n")
	titles, err := ResolveTitles(2, path, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if titles[0] != "Introduction" {
		t.Fatalf("unexpected first title: %q", titles[0])
	}
	// "12." is a numbering prefix; the remainder of the line survives.
	if titles[1] != "5 Miles Later" {
		t.Fatalf("unexpected second title: %q", titles[1])
	}
}
