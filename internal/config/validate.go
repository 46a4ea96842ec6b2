package config

import "fmt"

// Validate checks the configuration for values that would break a run.
func (c *Config) Validate() error {
	if c.Combine.ChapterThreshold < 1 {
		return fmt.Errorf("combine.chapter_threshold must be at least 1, got %d", c.Combine.ChapterThreshold)
	}
	if c.Tools.FFmpeg == "" {
		return fmt.Errorf("tools.ffmpeg must not be empty")
	}
	if c.Tools.FFprobe == "" {
		return fmt.Errorf("tools.ffprobe must not be empty")
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
