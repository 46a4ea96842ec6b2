package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bookbind/internal/logging"
)

// CleanStaleResult contains the outcome of a stale directory cleanup operation.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes staging directories left behind by interrupted runs
// that are older than maxAge.
func CleanStale(stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), "bookbind-") {
			continue
		}

		dirPath := filepath.Join(stagingDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Error: err})
			if logger != nil {
				logger.Warn("failed to remove stale staging directory",
					logging.String("path", dirPath),
					logging.Error(err),
				)
			}
		} else {
			result.Removed = append(result.Removed, dirPath)
			if logger != nil {
				logger.Info("removed stale staging directory",
					logging.String("path", dirPath),
					logging.Duration("age", time.Since(info.ModTime())),
				)
			}
		}
	}

	return result
}
