package probe

import (
	"context"
	"fmt"
	"strings"

	"bookbind/internal/media/ffprobe"
)

// Info is the normalized result of probing a single media file. Bitrate and
// SampleRate are 0 when the prober could not determine them.
type Info struct {
	Duration    float64
	Bitrate     int64
	SampleRate  int
	Tags        map[string]string
	HasCoverArt bool
}

// Prober extracts duration, bitrate, sample rate, and metadata from a media
// file without decoding its content.
type Prober interface {
	Probe(ctx context.Context, path string) (Info, error)
}

// File is one audiobook part in combine order.
type File struct {
	// Index is the 1-based position of the part in the combine order.
	Index       int
	Path        string
	Duration    float64
	Bitrate     int64
	SampleRate  int
	Tags        map[string]string
	HasCoverArt bool
}

// ProbeError reports an unreadable or unusable input file.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// All probes each path sequentially and returns one File per path in the
// same order. Any unreadable file or non-positive duration aborts the run.
func All(ctx context.Context, prober Prober, paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for i, path := range paths {
		info, err := prober.Probe(ctx, path)
		if err != nil {
			return nil, &ProbeError{Path: path, Err: err}
		}
		if info.Duration <= 0 {
			return nil, &ProbeError{Path: path, Err: fmt.Errorf("reported duration %v is not positive", info.Duration)}
		}
		files = append(files, File{
			Index:       i + 1,
			Path:        path,
			Duration:    info.Duration,
			Bitrate:     info.Bitrate,
			SampleRate:  info.SampleRate,
			Tags:        info.Tags,
			HasCoverArt: info.HasCoverArt,
		})
	}
	return files, nil
}

// FFProbe probes media files by running the ffprobe binary.
type FFProbe struct {
	Binary string
}

func (f FFProbe) Probe(ctx context.Context, path string) (Info, error) {
	result, err := ffprobe.Inspect(ctx, f.Binary, path)
	if err != nil {
		return Info{}, err
	}

	// Tag keys from ffprobe vary in case between containers; lowercase them
	// so the merge allow-list matches consistently.
	tags := make(map[string]string, len(result.Format.Tags))
	for key, value := range result.Format.Tags {
		tags[strings.ToLower(strings.TrimSpace(key))] = value
	}

	return Info{
		Duration:    result.DurationSeconds(),
		Bitrate:     result.BitRate(),
		SampleRate:  result.AudioSampleRate(),
		Tags:        tags,
		HasCoverArt: result.HasCoverArt(),
	}, nil
}
