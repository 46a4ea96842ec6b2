package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	LogDir     string `toml:"log_dir"`
}

// Tools names the external binaries bookbind invokes.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Combine contains defaults for the combine operation.
type Combine struct {
	// ChapterThreshold is the part count at which generated chapter names
	// switch from "Part N" to "Chapter N".
	ChapterThreshold int `toml:"chapter_threshold"`
	// VBR selects variable-bitrate encoding by default.
	VBR bool `toml:"vbr"`
	// MetadataTags is the allow-list of tags carried into the combined file.
	MetadataTags []string `toml:"metadata_tags"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for bookbind.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Combine Combine `toml:"combine"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/bookbind/config.toml")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The bool reports whether a file was
// actually found; defaults are used otherwise.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bookbind.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.StagingDir, err = ExpandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	tags := make([]string, 0, len(c.Combine.MetadataTags))
	for _, tag := range c.Combine.MetadataTags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	c.Combine.MetadataTags = tags
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
