package plan

import (
	"strings"

	"bookbind/internal/probe"
)

// Metadata is the merged metadata record for the combined output.
// CoverArtSource is the path of the input file supplying embedded art, or
// empty when no input has any.
type Metadata struct {
	Tags           map[string]string
	CoverArtSource string
}

// MergeMetadata merges tags across inputs with first-file precedence: for
// each allowed tag, the first non-empty value in combine order wins, so later
// files only fill gaps. Tags outside the allow-list are dropped. A "track"
// tag is forced to "1" since the combined file is a single track.
func MergeMetadata(files []probe.File, allow []string) Metadata {
	tags := make(map[string]string, len(allow))
	for _, key := range allow {
		for _, file := range files {
			if value := strings.TrimSpace(file.Tags[key]); value != "" {
				tags[key] = value
				break
			}
		}
	}
	if _, ok := tags["track"]; ok {
		tags["track"] = "1"
	}

	md := Metadata{Tags: tags}
	for _, file := range files {
		if file.HasCoverArt {
			md.CoverArtSource = file.Path
			break
		}
	}
	return md
}
