package plan

import (
	"testing"

	"bookbind/internal/probe"
)

var mergeAllow = []string{"title", "artist", "album", "track"}

func TestMergeMetadataFirstFilePrecedence(t *testing.T) {
	files := []probe.File{
		{Index: 1, Path: "a.mp3", Tags: map[string]string{"title": "Book", "album": "Book"}},
		{Index: 2, Path: "b.mp3", Tags: map[string]string{"title": "Book Part 2", "artist": "X"}},
	}

	md := MergeMetadata(files, mergeAllow)
	if md.Tags["title"] != "Book" {
		t.Fatalf("first file's title should win, got %q", md.Tags["title"])
	}
	if md.Tags["artist"] != "X" {
		t.Fatalf("later file should fill the artist gap, got %q", md.Tags["artist"])
	}
	if md.Tags["album"] != "Book" {
		t.Fatalf("unexpected album: %q", md.Tags["album"])
	}
}

func TestMergeMetadataDropsUnrecognizedTags(t *testing.T) {
	files := []probe.File{
		{Index: 1, Path: "a.mp3", Tags: map[string]string{"title": "Book", "encoder": "Lavf61"}},
	}
	md := MergeMetadata(files, mergeAllow)
	if _, ok := md.Tags["encoder"]; ok {
		t.Fatal("unrecognized tag should be dropped")
	}
}

func TestMergeMetadataSkipsBlankValues(t *testing.T) {
	files := []probe.File{
		{Index: 1, Path: "a.mp3", Tags: map[string]string{"artist": "   "}},
		{Index: 2, Path: "b.mp3", Tags: map[string]string{"artist": "Narrator"}},
	}
	md := MergeMetadata(files, mergeAllow)
	if md.Tags["artist"] != "Narrator" {
		t.Fatalf("blank value should not win: %q", md.Tags["artist"])
	}
}

func TestMergeMetadataForcesTrackToOne(t *testing.T) {
	files := []probe.File{
		{Index: 1, Path: "a.mp3", Tags: map[string]string{"track": "3/12"}},
	}
	md := MergeMetadata(files, mergeAllow)
	if md.Tags["track"] != "1" {
		t.Fatalf("track should be reset to 1, got %q", md.Tags["track"])
	}
}

func TestMergeMetadataCoverArtFromFirstCarrier(t *testing.T) {
	files := []probe.File{
		{Index: 1, Path: "a.mp3"},
		{Index: 2, Path: "b.mp3", HasCoverArt: true},
		{Index: 3, Path: "c.mp3", HasCoverArt: true},
	}
	md := MergeMetadata(files, mergeAllow)
	if md.CoverArtSource != "b.mp3" {
		t.Fatalf("unexpected cover source: %q", md.CoverArtSource)
	}
}

func TestMergeMetadataNoCoverArt(t *testing.T) {
	md := MergeMetadata([]probe.File{{Index: 1, Path: "a.mp3"}}, mergeAllow)
	if md.CoverArtSource != "" {
		t.Fatalf("expected no cover source, got %q", md.CoverArtSource)
	}
}
