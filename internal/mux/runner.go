package mux

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"bookbind/internal/logging"
	"bookbind/internal/plan"
)

// Muxer executes a combine plan: re-encode the parts, concatenate them, and
// stamp chapters, metadata, and cover art into the output container.
type Muxer interface {
	EncodeAndMux(ctx context.Context, p *plan.CombinePlan, workDir string) error
}

// EncodeError reports a failed external encode/mux invocation. Detail
// carries the tool's diagnostic verbatim.
type EncodeError struct {
	OutputPath string
	Detail     string
	Err        error
}

func (e *EncodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("encode %s: %v", e.OutputPath, e.Err)
	}
	return fmt.Sprintf("encode %s: %v: %s", e.OutputPath, e.Err, e.Detail)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Runner drives the ffmpeg binary.
type Runner struct {
	FFmpeg string
	Logger *slog.Logger
}

// EncodeAndMux executes the staged combine inside workDir and atomically
// moves the finished file to the plan's output path. All intermediates live
// in workDir; the caller owns its cleanup.
func (r *Runner) EncodeAndMux(ctx context.Context, p *plan.CombinePlan, workDir string) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	cover := r.extractCover(ctx, p, workDir, logger)

	staged := make([]string, 0, len(p.Inputs))
	for _, input := range p.Inputs {
		out := filepath.Join(workDir, fmt.Sprintf("part-%03d.m4b", input.Index))
		logger.Info("re-encoding part",
			logging.Int("part", input.Index),
			logging.String("input", input.Path),
		)
		if err := r.run(ctx, p.OutputPath, encodeArgs(p.Params, input.Path, out)); err != nil {
			return err
		}
		staged = append(staged, out)
	}

	list, err := concatList(staged)
	if err != nil {
		return &EncodeError{OutputPath: p.OutputPath, Err: err}
	}
	listPath := filepath.Join(workDir, "parts.txt")
	if err := os.WriteFile(listPath, []byte(list), 0o644); err != nil {
		return &EncodeError{OutputPath: p.OutputPath, Err: fmt.Errorf("write concat list: %w", err)}
	}

	combined := filepath.Join(workDir, "combined.m4b")
	logger.Info("concatenating parts", logging.Int("parts", len(staged)))
	if err := r.run(ctx, p.OutputPath, concatArgs(listPath, cover, combined)); err != nil {
		return err
	}

	metaPath := filepath.Join(workDir, "chapters.ffmeta")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return &EncodeError{OutputPath: p.OutputPath, Err: fmt.Errorf("create chapter metadata: %w", err)}
	}
	writeErr := WriteFFMetadata(metaFile, p.Metadata, p.Chapters)
	if closeErr := metaFile.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return &EncodeError{OutputPath: p.OutputPath, Err: fmt.Errorf("write chapter metadata: %w", writeErr)}
	}

	tmpOutput := p.OutputPath + ".tmp"
	logger.Info("writing chapters and metadata", logging.Int("chapters", len(p.Chapters)))
	if err := r.run(ctx, p.OutputPath, chapterArgs(combined, metaPath, tmpOutput)); err != nil {
		return err
	}
	if err := os.Rename(tmpOutput, p.OutputPath); err != nil {
		return &EncodeError{OutputPath: p.OutputPath, Err: fmt.Errorf("move output into place: %w", err)}
	}
	return nil
}

// extractCover pulls embedded art from the source that carries it. Failures
// degrade to an output without cover art rather than aborting the run.
func (r *Runner) extractCover(ctx context.Context, p *plan.CombinePlan, workDir string, logger *slog.Logger) string {
	source := p.Metadata.CoverArtSource
	if source == "" {
		return ""
	}
	cover := filepath.Join(workDir, "cover.jpg")
	if err := r.run(ctx, p.OutputPath, coverArgs(source, cover)); err != nil {
		logger.Warn("cover art extraction failed",
			logging.String("source", source),
			logging.Error(err),
		)
		return ""
	}
	if info, err := os.Stat(cover); err != nil || info.Size() == 0 {
		logger.Warn("cover art extraction produced no image", logging.String("source", source))
		return ""
	}
	return cover
}

func (r *Runner) run(ctx context.Context, outputPath string, args []string) error {
	binary := strings.TrimSpace(r.FFmpeg)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &EncodeError{
			OutputPath: outputPath,
			Detail:     strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}
	return nil
}
