package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bookbind/internal/chapters"
	"bookbind/internal/deps"
	"bookbind/internal/mux"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	chaptersCmd := &cobra.Command{
		Use:   "chapters",
		Short: "Inspect or rewrite the chapters of a finished audiobook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	chaptersCmd.AddCommand(newChaptersShowCommand(ctx))
	chaptersCmd.AddCommand(newChaptersSplitCommand(ctx))
	chaptersCmd.AddCommand(newChaptersOverwriteCommand(ctx))
	return chaptersCmd
}

func newChaptersShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Display the chapter structure of an audiobook file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			reader := chapters.FFProbeReader{Binary: cfg.Tools.FFprobe}
			book, err := reader.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(book.Chapters) == 0 {
				fmt.Fprintf(out, "%s has no chapters\n", args[0])
				return nil
			}

			fmt.Fprintf(out, "Title:    %s\n", book.Title)
			fmt.Fprintf(out, "Chapters: %d\n\n", len(book.Chapters))
			rows := make([][]string, 0, len(book.Chapters))
			for _, ch := range book.Chapters {
				rows = append(rows, []string{
					strconv.Itoa(ch.Index),
					ch.Title,
					formatOffset(ch.Start),
					formatOffset(ch.End),
					formatOffset(ch.End - ch.Start),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"##", "Title", "Start", "End", "Length"},
				rows,
				0, 2, 3, 4,
			))
			return nil
		},
	}
}

func newChaptersSplitCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Extract each chapter into its own stream-copied file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.Verify(deps.Default(cfg.Tools.FFmpeg, cfg.Tools.FFprobe)); err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			reader := chapters.FFProbeReader{Binary: cfg.Tools.FFprobe}
			book, err := reader.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(book.Chapters) <= 1 {
				fmt.Fprintf(out, "%s has %d chapter(s); nothing to split\n", args[0], len(book.Chapters))
				return nil
			}

			runner := &mux.Runner{FFmpeg: cfg.Tools.FFmpeg, Logger: logger}
			written, err := runner.SplitChapters(cmd.Context(), book, outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Extracted %d chapters of %q into %s\n", len(written), book.Title, outputDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the extracted chapter files")
	return cmd
}

func newChaptersOverwriteCommand(ctx *commandContext) *cobra.Command {
	var listFile string
	var output string
	cmd := &cobra.Command{
		Use:   "overwrite <file>",
		Short: "Rewrite chapter markers from a titles-and-durations list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := deps.Verify(deps.Default(cfg.Tools.FFmpeg, cfg.Tools.FFprobe)); err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			chs, err := chapters.ParseListFile(listFile)
			if err != nil {
				return err
			}

			// Probing the input keeps its existing tags riding through the
			// metadata rewrite.
			reader := chapters.FFProbeReader{Binary: cfg.Tools.FFprobe}
			book, err := reader.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			runner := &mux.Runner{FFmpeg: cfg.Tools.FFmpeg, Logger: logger}
			if err := runner.RewriteChapters(cmd.Context(), book, chs, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d chapters\n", output, len(chs))
			return nil
		},
	}
	cmd.Flags().StringVar(&listFile, "chapter-list", "", "File with one \"<title> <duration>\" line per chapter")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path for the rewritten audiobook file")
	_ = cmd.MarkFlagRequired("chapter-list")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
