package mux

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"bookbind/internal/plan"
)

// Builders return argument slices for the ffmpeg binary (the binary name
// itself is not included). Keeping them pure makes the generated commands
// directly assertable in tests.

func commonArgs() []string {
	return []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error"}
}

// encodeArgs re-encodes one part into a staged AAC segment with the plan's
// parameters. Re-encoding every part first guarantees a uniform stream for
// the lossless concat step.
func encodeArgs(params plan.EncodingParams, input, output string) []string {
	args := append(commonArgs(), "-i", input, "-vn", "-c:a", "aac")
	switch params.Mode {
	case plan.ModeVBR:
		args = append(args, "-q:a", strconv.Itoa(params.Quality))
	default:
		args = append(args, "-b:a", params.Bitrate)
	}
	if params.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(params.SampleRate))
	}
	return append(args, output)
}

// coverArgs extracts embedded cover art from input into an image file.
func coverArgs(input, output string) []string {
	args := append(commonArgs(), "-i", input, "-an", "-vcodec", "copy")
	return append(args, output)
}

// concatArgs joins the staged segments via the concat demuxer, stream-copying
// audio and optionally attaching cover art.
func concatArgs(listPath, coverPath, output string) []string {
	args := append(commonArgs(), "-f", "concat", "-safe", "0", "-i", listPath)
	if coverPath != "" {
		args = append(args,
			"-i", coverPath,
			"-map", "0:a", "-map", "1:v",
			"-c:v", "copy",
			"-disposition:v:0", "attached_pic",
		)
	} else {
		args = append(args, "-map", "0:a")
	}
	return append(args, "-c:a", "copy", output)
}

// splitArgs stream-copies one chapter's time range out of an audiobook,
// stamping the chapter title as the new file's title tag.
func splitArgs(input string, start, duration float64, title, output string) []string {
	args := append(commonArgs(),
		"-i", input,
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-c", "copy",
		"-metadata", "title="+title,
	)
	return append(args, output)
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// chapterArgs stream-copies the combined file while importing chapters and
// metadata from an FFMETADATA document.
func chapterArgs(input, metadataPath, output string) []string {
	args := append(commonArgs(),
		"-i", input,
		"-i", metadataPath,
		"-map_metadata", "1",
		"-map_chapters", "1",
		"-c", "copy",
	)
	return append(args, output)
}

// concatList renders the concat demuxer's input list. Paths are absolute and
// single-quoted, with embedded quotes escaped the way the demuxer expects.
func concatList(paths []string) (string, error) {
	var b strings.Builder
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		quoted := strings.ReplaceAll(abs, "'", `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", quoted)
	}
	return b.String(), nil
}
