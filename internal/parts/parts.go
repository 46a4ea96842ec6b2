package parts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Part files are named "<book> (<n>).<ext>" where n is the 1-based part
// number assigned by the download tooling.
var partName = regexp.MustCompile(`^(.*)\((\d+)\)$`)

var supportedExtensions = map[string]struct{}{
	".mp3": {},
	".m4a": {},
	".aax": {},
}

// Part is one discovered audiobook part.
type Part struct {
	Path    string
	Ordinal int
}

// Discover scans dir for audiobook part files, infers the book name from the
// first match, and returns the matching parts ordered by part number.
func Discover(dir string) (string, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("scan directory: %w", err)
	}

	var book string
	var parts []Part
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if _, ok := supportedExtensions[ext]; !ok {
			continue
		}
		match := partName.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
		if match == nil {
			continue
		}
		prefix := strings.TrimSpace(match[1])
		if prefix == "" {
			continue
		}
		if book == "" {
			book = prefix
		}
		if prefix != book {
			continue
		}
		ordinal, err := strconv.Atoi(match[2])
		if err != nil {
			return "", nil, fmt.Errorf("parse part number in %s: %w", name, err)
		}
		parts = append(parts, Part{Path: filepath.Join(dir, name), Ordinal: ordinal})
	}

	if len(parts) == 0 {
		return "", nil, fmt.Errorf("no part files found in %s", dir)
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Ordinal < parts[j].Ordinal })

	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		paths = append(paths, part.Path)
	}
	return book, paths, nil
}
