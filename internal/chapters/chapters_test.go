package chapters

import (
	"strings"
	"testing"

	"bookbind/internal/media/ffprobe"
)

func TestParseList(t *testing.T) {
	input := strings.Join([]string{
		"# front matter",
		"Opening Credits 00:17.90",
		"",
		"Dedication 00:11.50",
		"Prologue 06:06.25",
		"Chapter One 1:26:43.50",
	}, "\n")

	chapters, err := ParseList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseList returned error: %v", err)
	}
	if len(chapters) != 4 {
		t.Fatalf("unexpected chapter count: %d", len(chapters))
	}
	if chapters[0].Title != "Opening Credits" || chapters[0].Start != 0 || chapters[0].End != 17.9 {
		t.Fatalf("first chapter wrong: %+v", chapters[0])
	}
	if chapters[1].Start != 17.9 || chapters[1].End != 29.4 {
		t.Fatalf("offsets should accumulate: %+v", chapters[1])
	}
	if chapters[3].Title != "Chapter One" {
		t.Fatalf("title with spaces lost: %+v", chapters[3])
	}
	if chapters[3].End-chapters[3].Start != 5203.5 {
		t.Fatalf("H:MM:SS.ss duration mis-parsed: %+v", chapters[3])
	}
	for i := 1; i < len(chapters); i++ {
		if chapters[i].Start != chapters[i-1].End {
			t.Fatalf("chapters not contiguous at %d: %+v", i, chapters)
		}
	}
}

func TestParseListRejectsMalformedLine(t *testing.T) {
	input := "Opening Credits 00:17.90\nno duration here\n"
	_, err := ParseList(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestParseListRejectsEmptyList(t *testing.T) {
	if _, err := ParseList(strings.NewReader("# only comments\n\n")); err == nil {
		t.Fatal("expected error for empty chapter list")
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string]float64{
		"00:17.90":   17.9,
		"06:06.25":   366.25,
		"01:26:43.5": 5203.5,
		"0:05:00":    300,
	}
	for value, want := range cases {
		got, err := parseClock(value)
		if err != nil {
			t.Fatalf("parseClock(%q) returned error: %v", value, err)
		}
		if got != want {
			t.Fatalf("parseClock(%q) = %v, want %v", value, got, want)
		}
	}
	for _, bad := range []string{"17.90", "1:2:3:4", "aa:bb"} {
		if _, err := parseClock(bad); err == nil {
			t.Fatalf("parseClock(%q) should fail", bad)
		}
	}
}

func TestFromResultNormalizes(t *testing.T) {
	result := ffprobe.Result{
		Chapters: []ffprobe.Chapter{
			{ID: 1, StartTime: "17.9", EndTime: "383.15", Tags: map[string]string{"title": "Prologue"}},
			{ID: 0, StartTime: "0", EndTime: "17.9", Tags: map[string]string{"title": "Opening Credits"}},
			{ID: 2, StartTime: "383.15", EndTime: "383.5", Tags: map[string]string{"title": "Blip"}},
			{ID: 3, StartTime: "17.9", EndTime: "383.15", Tags: map[string]string{"title": "Prologue"}},
			{ID: 4, StartTime: "383.5", EndTime: "500"},
		},
		Format: ffprobe.Format{Tags: map[string]string{"Title": "My Book", "artist": "Author"}},
	}

	book := fromResult(result, "/books/My Book.m4b")
	if book.Title != "My Book" {
		t.Fatalf("book title not taken from tags: %q", book.Title)
	}
	if book.Tags["artist"] != "Author" {
		t.Fatalf("tags not lowercased: %v", book.Tags)
	}
	if len(book.Chapters) != 3 {
		t.Fatalf("expected sub-second and duplicate chapters dropped, got %+v", book.Chapters)
	}
	if book.Chapters[0].Title != "Opening Credits" || book.Chapters[1].Title != "Prologue" {
		t.Fatalf("chapters not sorted by start: %+v", book.Chapters)
	}
	if book.Chapters[2].Title != "Chapter 4" {
		t.Fatalf("untitled chapter should fall back to its id: %+v", book.Chapters[2])
	}
	for i, ch := range book.Chapters {
		if ch.Index != i+1 {
			t.Fatalf("chapters not renumbered: %+v", book.Chapters)
		}
	}
}

func TestFromResultUntitledBook(t *testing.T) {
	book := fromResult(ffprobe.Result{}, "/books/x.m4b")
	if book.Title != "Untitled" {
		t.Fatalf("missing title tag should fall back to Untitled, got %q", book.Title)
	}
	if len(book.Chapters) != 0 {
		t.Fatalf("expected no chapters, got %+v", book.Chapters)
	}
}

func TestSanitizeTitle(t *testing.T) {
	if got := SanitizeTitle(`A/B\C: "D"?*<>|`); got != "ABC D" {
		t.Fatalf("unexpected sanitized title: %q", got)
	}
}
