package chapters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"bookbind/internal/media/ffprobe"
	"bookbind/internal/plan"
)

// Chapters shorter than this are container artifacts, not real chapters, and
// are dropped from both display and extraction.
const minLength = 1.0

// Book is the chapter structure of a single audiobook file.
type Book struct {
	Path     string
	Title    string
	Tags     map[string]string
	Chapters []plan.Chapter
}

// Reader extracts the chapter structure of an audiobook file.
type Reader interface {
	Read(ctx context.Context, path string) (Book, error)
}

// FFProbeReader reads chapter structure by running the ffprobe binary.
type FFProbeReader struct {
	Binary string
}

func (r FFProbeReader) Read(ctx context.Context, path string) (Book, error) {
	result, err := ffprobe.Inspect(ctx, r.Binary, path)
	if err != nil {
		return Book{}, err
	}
	return fromResult(result, path), nil
}

// fromResult normalizes probed chapters: sorted by start offset, sub-second
// entries dropped, duplicates (same title and time range) collapsed, and the
// survivors renumbered from 1.
func fromResult(result ffprobe.Result, path string) Book {
	tags := make(map[string]string, len(result.Format.Tags))
	for key, value := range result.Format.Tags {
		tags[strings.ToLower(strings.TrimSpace(key))] = value
	}

	title := tags["title"]
	if title == "" {
		title = "Untitled"
	}

	sorted := make([]ffprobe.Chapter, len(result.Chapters))
	copy(sorted, result.Chapters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartSeconds() < sorted[j].StartSeconds()
	})

	chapters := make([]plan.Chapter, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, ch := range sorted {
		start, end := ch.StartSeconds(), ch.EndSeconds()
		if end-start < minLength {
			continue
		}
		name := ch.Title()
		if name == "" {
			name = fmt.Sprintf("Chapter %d", ch.ID)
		}
		key := fmt.Sprintf("%s\x00%v\x00%v", name, start, end)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		chapters = append(chapters, plan.Chapter{
			Index: len(chapters) + 1,
			Title: name,
			Start: start,
			End:   end,
		})
	}

	return Book{Path: path, Title: title, Tags: tags, Chapters: chapters}
}

// listLine splits "Opening Credits 00:17.90" at the last run of whitespace
// before a clock value.
var listLine = regexp.MustCompile(`^(.*?)\s+(\d{1,2}:\d{2}(?::\d{2})?(?:\.\d+)?)$`)

// ParseList reads a chapter list, one chapter per line: a title followed by
// its duration as H:MM:SS.ss or MM:SS.ss. Blank lines and lines starting
// with # are skipped. The returned chapters carry cumulative offsets.
func ParseList(r io.Reader) ([]plan.Chapter, error) {
	var titles []string
	var durations []float64

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		match := listLine.FindStringSubmatch(line)
		if match == nil {
			return nil, fmt.Errorf("chapter list line %d: %q is not \"<title> <duration>\"", lineNumber, line)
		}
		duration, err := parseClock(match[2])
		if err != nil {
			return nil, fmt.Errorf("chapter list line %d: %w", lineNumber, err)
		}
		titles = append(titles, strings.TrimSpace(match[1]))
		durations = append(durations, duration)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chapter list: %w", err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("chapter list contains no chapters")
	}
	return plan.BuildTimeline(durations, titles)
}

// ParseListFile is ParseList over a file on disk.
func ParseListFile(path string) ([]plan.Chapter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chapter list: %w", err)
	}
	defer file.Close()
	return ParseList(file)
}

// parseClock converts H:MM:SS.ss or MM:SS.ss to seconds.
func parseClock(value string) (float64, error) {
	parts := strings.Split(value, ":")
	var hours, minutes int
	var seconds float64
	var err error
	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		if seconds, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
	case 2:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
		if seconds, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("invalid duration %q", value)
		}
	default:
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

var unsafeFileChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeTitle strips characters that cannot appear in file names.
func SanitizeTitle(title string) string {
	return strings.TrimSpace(unsafeFileChars.ReplaceAllString(title, ""))
}
