package plan

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var titleNumberPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ResolveTitles produces the ordered list of n chapter display names.
//
// With a titles file, each non-empty line supplies one title (in order), with
// any leading "<digits>." numbering prefix stripped; the line count must
// equal n. Without one, titles are generated as "Part i" when n is below
// threshold and "Chapter i" otherwise.
func ResolveTitles(n int, titlesPath string, threshold int) ([]string, error) {
	if strings.TrimSpace(titlesPath) != "" {
		return readTitlesFile(titlesPath, n)
	}

	label := "Chapter"
	if n < threshold {
		label = "Part"
	}
	titles := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		titles = append(titles, fmt.Sprintf("%s %d", label, i))
	}
	return titles, nil
}

func readTitlesFile(path string, want int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chapter titles: %w", err)
	}

	var titles []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = titleNumberPrefix.ReplaceAllString(line, "")
		// Titles files come from arbitrary sources; normalize so the same
		// visible title always produces the same bytes in the output.
		titles = append(titles, norm.NFC.String(line))
	}

	if len(titles) != want {
		return nil, &TitleCountMismatchError{Path: path, Want: want, Got: len(titles)}
	}
	return titles, nil
}
