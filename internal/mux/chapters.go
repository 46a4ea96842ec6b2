package mux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bookbind/internal/chapters"
	"bookbind/internal/logging"
	"bookbind/internal/plan"
)

// SplitChapters extracts each chapter of book into its own stream-copied
// file under outputDir, named "<book title> (n).m4b". A book with one
// chapter or none is left alone and nothing is written. The returned paths
// are the files written so far, even on error.
func (r *Runner) SplitChapters(ctx context.Context, book chapters.Book, outputDir string) ([]string, error) {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if len(book.Chapters) <= 1 {
		logger.Info("nothing to split", logging.Int("chapters", len(book.Chapters)))
		return nil, nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	title := chapters.SanitizeTitle(book.Title)
	if title == "" {
		title = "Untitled"
	}

	written := make([]string, 0, len(book.Chapters))
	for _, ch := range book.Chapters {
		out := filepath.Join(outputDir, fmt.Sprintf("%s (%d).m4b", title, ch.Index))
		logger.Info("extracting chapter",
			logging.Int("chapter", ch.Index),
			logging.String("title", ch.Title),
			logging.String("output", out),
		)
		if err := r.run(ctx, out, splitArgs(book.Path, ch.Start, ch.End-ch.Start, ch.Title, out)); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

// RewriteChapters stream-copies book to outputPath with its chapter markers
// replaced by chs. The book's existing tags ride along in the metadata
// document so the rewrite does not strip them.
func (r *Runner) RewriteChapters(ctx context.Context, book chapters.Book, chs []plan.Chapter, outputPath string) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(chs) == 0 {
		return fmt.Errorf("no chapters to write")
	}

	meta, err := os.CreateTemp(filepath.Dir(outputPath), "chapters-*.ffmeta")
	if err != nil {
		return fmt.Errorf("create chapter metadata: %w", err)
	}
	metaPath := meta.Name()
	defer os.Remove(metaPath)

	writeErr := WriteFFMetadata(meta, plan.Metadata{Tags: book.Tags}, chs)
	if closeErr := meta.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return fmt.Errorf("write chapter metadata: %w", writeErr)
	}

	logger.Info("rewriting chapters",
		logging.String("input", book.Path),
		logging.Int("chapters", len(chs)),
		logging.String("output", outputPath),
	)
	tmpOutput := outputPath + ".tmp"
	if err := r.run(ctx, outputPath, chapterArgs(book.Path, metaPath, tmpOutput)); err != nil {
		return err
	}
	if err := os.Rename(tmpOutput, outputPath); err != nil {
		return &EncodeError{OutputPath: outputPath, Err: fmt.Errorf("move output into place: %w", err)}
	}
	return nil
}
