package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams  []Stream  `json:"streams"`
	Chapters []Chapter `json:"chapters"`
	Format   Format    `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index       int         `json:"index"`
	CodecName   string      `json:"codec_name"`
	CodecType   string      `json:"codec_type"`
	Duration    string      `json:"duration"`
	BitRate     string      `json:"bit_rate"`
	SampleRate  string      `json:"sample_rate"`
	Channels    int         `json:"channels"`
	Disposition Disposition `json:"disposition"`
}

// Disposition carries the stream disposition flags bookbind cares about.
type Disposition struct {
	AttachedPic int `json:"attached_pic"`
}

// Chapter is one chapter marker in the container. Offsets are reported both
// in TimeBase units and as decimal-second strings; bookbind reads the latter.
type Chapter struct {
	ID        int64             `json:"id"`
	TimeBase  string            `json:"time_base"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Tags      map[string]string `json:"tags"`
}

// StartSeconds returns the chapter start offset in seconds, or 0 when unavailable.
func (c Chapter) StartSeconds() float64 {
	value := parseFloat(c.StartTime)
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	return value
}

// EndSeconds returns the chapter end offset in seconds, or 0 when unavailable.
func (c Chapter) EndSeconds() float64 {
	value := parseFloat(c.EndTime)
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	return value
}

// Title returns the chapter's title tag, or "" when the container has none.
func (c Chapter) Title() string {
	for key, value := range c.Tags {
		if strings.EqualFold(key, "title") {
			return value
		}
	}
	return ""
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-show_chapters", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return Parse(output)
}

// Parse decodes raw ffprobe JSON output.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	value := parseFloat(r.Format.Duration)
	if math.IsNaN(value) {
		return 0
	}
	return value
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

// AudioSampleRate returns the sample rate of the first audio stream in Hz,
// or 0 when unavailable.
func (r Result) AudioSampleRate() int {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		rate := parseFloat(stream.SampleRate)
		if math.IsNaN(rate) || rate <= 0 {
			return 0
		}
		return int(rate)
	}
	return 0
}

// HasCoverArt reports whether the container carries embedded cover art,
// exposed by ffprobe as a video stream flagged attached_pic.
func (r Result) HasCoverArt() bool {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") && stream.Disposition.AttachedPic != 0 {
			return true
		}
	}
	return false
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
