package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary bookbind relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// Default returns the requirements for a combine run with the configured
// tool commands.
func Default(ffmpeg, ffprobe string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "re-encodes and concatenates audio parts"},
		{Name: "FFprobe", Command: ffprobe, Description: "probes part duration, bitrate, and tags"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Verify returns an error naming every unavailable requirement.
func Verify(requirements []Requirement) error {
	var missing []string
	for _, status := range CheckBinaries(requirements) {
		if !status.Available {
			missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
		}
	}
	if len(missing) > 0 {
		return errors.New("missing required tools: " + strings.Join(missing, ", "))
	}
	return nil
}
