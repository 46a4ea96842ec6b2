package staging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"bookbind/internal/logging"
)

// Dir is a scoped working directory for one combine run. Its contents
// (staged re-encodes, concat list, chapter metadata, extracted cover) are
// removed on both success and failure paths.
type Dir struct {
	Root   string
	logger *slog.Logger
}

// New creates a uniquely named working directory under parent.
func New(parent string, logger *slog.Logger) (*Dir, error) {
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("ensure staging root %s: %w", parent, err)
	}
	root := filepath.Join(parent, "bookbind-"+uuid.NewString())
	if err := os.Mkdir(root, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dir{Root: root, logger: logger}, nil
}

// Path returns the location of a named file inside the working directory.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.Root, name)
}

// Cleanup removes the working directory and everything in it.
func (d *Dir) Cleanup() {
	if d == nil || d.Root == "" {
		return
	}
	if err := os.RemoveAll(d.Root); err != nil {
		d.logger.Warn("failed to remove staging directory",
			logging.String("path", d.Root),
			logging.Error(err),
		)
		return
	}
	d.logger.Debug("removed staging directory", logging.String("path", d.Root))
}
