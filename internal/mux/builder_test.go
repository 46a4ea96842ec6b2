package mux

import (
	"path/filepath"
	"strings"
	"testing"

	"bookbind/internal/plan"
)

func argsContainPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func TestEncodeArgsCBR(t *testing.T) {
	params := plan.EncodingParams{Mode: plan.ModeCBR, Bitrate: "128k", Quality: -1}
	args := encodeArgs(params, "in.mp3", "out.m4b")

	if !argsContainPair(args, "-b:a", "128k") {
		t.Fatalf("missing bitrate option: %v", args)
	}
	if !argsContainPair(args, "-c:a", "aac") {
		t.Fatalf("missing codec option: %v", args)
	}
	for _, arg := range args {
		if arg == "-q:a" {
			t.Fatalf("cbr command should not carry quality: %v", args)
		}
		if arg == "-ar" {
			t.Fatalf("unset sample rate should be omitted so the source rate is inherited: %v", args)
		}
	}
	if args[len(args)-1] != "out.m4b" {
		t.Fatalf("output must be last: %v", args)
	}
}

func TestEncodeArgsVBRWithSampleRate(t *testing.T) {
	params := plan.EncodingParams{Mode: plan.ModeVBR, Quality: 2, SampleRate: 22050}
	args := encodeArgs(params, "in.mp3", "out.m4b")

	if !argsContainPair(args, "-q:a", "2") {
		t.Fatalf("missing quality option: %v", args)
	}
	if !argsContainPair(args, "-ar", "22050") {
		t.Fatalf("missing sample rate option: %v", args)
	}
	for _, arg := range args {
		if arg == "-b:a" {
			t.Fatalf("vbr command should not carry bitrate: %v", args)
		}
	}
}

func TestConcatArgsWithCover(t *testing.T) {
	args := concatArgs("list.txt", "cover.jpg", "out.m4b")
	if !argsContainPair(args, "-i", "cover.jpg") {
		t.Fatalf("cover input missing: %v", args)
	}
	if !argsContainPair(args, "-disposition:v:0", "attached_pic") {
		t.Fatalf("attached_pic disposition missing: %v", args)
	}
	if !argsContainPair(args, "-map", "1:v") {
		t.Fatalf("cover stream map missing: %v", args)
	}
}

func TestConcatArgsWithoutCover(t *testing.T) {
	args := concatArgs("list.txt", "", "out.m4b")
	for _, arg := range args {
		if arg == "attached_pic" {
			t.Fatalf("no cover expected: %v", args)
		}
	}
	if !argsContainPair(args, "-map", "0:a") {
		t.Fatalf("audio map missing: %v", args)
	}
	if !argsContainPair(args, "-c:a", "copy") {
		t.Fatalf("concat must stream-copy audio: %v", args)
	}
}

func TestChapterArgs(t *testing.T) {
	args := chapterArgs("combined.m4b", "chapters.ffmeta", "Book.m4b.tmp")
	if !argsContainPair(args, "-map_metadata", "1") || !argsContainPair(args, "-map_chapters", "1") {
		t.Fatalf("metadata/chapter maps missing: %v", args)
	}
	if !argsContainPair(args, "-c", "copy") {
		t.Fatalf("chapter pass must not re-encode: %v", args)
	}
}

func TestSplitArgs(t *testing.T) {
	args := splitArgs("Book.m4b", 395.65, 5203.5, "Chapter One", "Book (4).m4b")
	if !argsContainPair(args, "-ss", "395.65") {
		t.Fatalf("start offset missing or padded: %v", args)
	}
	if !argsContainPair(args, "-t", "5203.5") {
		t.Fatalf("duration missing: %v", args)
	}
	if !argsContainPair(args, "-c", "copy") {
		t.Fatalf("split must stream-copy: %v", args)
	}
	if !argsContainPair(args, "-metadata", "title=Chapter One") {
		t.Fatalf("chapter title tag missing: %v", args)
	}
	if args[len(args)-1] != "Book (4).m4b" {
		t.Fatalf("output must be last: %v", args)
	}
}

func TestConcatList(t *testing.T) {
	list, err := concatList([]string{"/work/part-001.m4b", "/work/it's here.m4b"})
	if err != nil {
		t.Fatalf("concatList returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(list), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "file '/work/part-001.m4b'" {
		t.Fatalf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], `'\''`) {
		t.Fatalf("single quote not escaped: %s", lines[1])
	}
}

func TestConcatListMakesPathsAbsolute(t *testing.T) {
	list, err := concatList([]string{"relative.m4b"})
	if err != nil {
		t.Fatalf("concatList returned error: %v", err)
	}
	path := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(list), "file '"), "'")
	if !filepath.IsAbs(path) {
		t.Fatalf("expected absolute path, got %s", path)
	}
}
