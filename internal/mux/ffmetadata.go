package mux

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"bookbind/internal/plan"
)

// ffmetadataEscaper escapes the characters the FFMETADATA format treats
// specially in keys and values.
var ffmetadataEscaper = strings.NewReplacer(
	`\`, `\\`,
	"=", `\=`,
	";", `\;`,
	"#", `\#`,
	"\n", `\`+"\n",
)

// WriteFFMetadata renders the merged tags and the planned chapter timeline
// as an FFMETADATA1 document. Chapter offsets use a millisecond timebase.
// Tags are written in sorted order so identical plans produce identical
// documents.
func WriteFFMetadata(w io.Writer, md plan.Metadata, chapters []plan.Chapter) error {
	if _, err := io.WriteString(w, ";FFMETADATA1\n"); err != nil {
		return err
	}

	keys := make([]string, 0, len(md.Tags))
	for key := range md.Tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		line := fmt.Sprintf("%s=%s\n", ffmetadataEscaper.Replace(key), ffmetadataEscaper.Replace(md.Tags[key]))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	for _, chapter := range chapters {
		block := fmt.Sprintf(
			"\n[CHAPTER]\nTIMEBASE=1/1000\nSTART=%d\nEND=%d\nTITLE=%s\n",
			toMillis(chapter.Start),
			toMillis(chapter.End),
			ffmetadataEscaper.Replace(chapter.Title),
		)
		if _, err := io.WriteString(w, block); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}
