package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"bookbind/internal/combine"
	"bookbind/internal/config"
	"bookbind/internal/logging"
	"bookbind/internal/mux"
	"bookbind/internal/plan"
	"bookbind/internal/probe"
)

type rootOptions struct {
	combine          bool
	clean            bool
	dryRun           bool
	vbr              bool
	quality          int
	bitrate          string
	sampleRate       int
	chapterThreshold int
	titlesFile       string
	dir              string
	output           string
}

func newRootCommand() *cobra.Command {
	var configFlag string
	opts := &rootOptions{}
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "bookbind",
		Short:         "Combine audiobook parts into a single chapterized m4b",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.combine && !opts.clean {
				return cmd.Help()
			}
			return runRoot(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.combine, "combine", false, "Combine the parts into a single m4b file")
	flags.BoolVar(&opts.clean, "clean", false, "Delete part files once the combined m4b exists")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Show the combine plan without writing any files")
	flags.BoolVar(&opts.vbr, "vbr", false, "Use VBR encoding")
	flags.IntVar(&opts.quality, "quality", -1, "VBR quality level (0=best, 5=worst)")
	flags.StringVar(&opts.bitrate, "bitrate", "", "CBR bitrate (e.g. 64k, 96k)")
	flags.IntVar(&opts.sampleRate, "sample-rate", 0, "Output sample rate in Hz (default: inherit source)")
	flags.IntVar(&opts.chapterThreshold, "chapter-threshold", 0, "Part count at which chapters are named \"Chapter\" instead of \"Part\"")
	flags.StringVar(&opts.titlesFile, "chapter-titles-file", "", "File containing chapter titles, one per line")
	flags.StringVar(&opts.dir, "dir", ".", "Directory containing the part files")
	flags.StringVarP(&opts.output, "output", "o", "", "Output path (default: \"<book>.m4b\" next to the parts)")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newChaptersCommand(ctx))

	return rootCmd
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func runRoot(cmd *cobra.Command, ctx *commandContext, opts *rootOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	overrides := plan.Overrides{
		VBR:        opts.vbr || cfg.Combine.VBR,
		Bitrate:    opts.bitrate,
		SampleRate: opts.sampleRate,
	}
	if cmd.Flags().Changed("quality") {
		overrides.SetQuality(opts.quality)
	}

	prober := probe.FFProbe{Binary: cfg.Tools.FFprobe}
	muxer := &mux.Runner{FFmpeg: cfg.Tools.FFmpeg, Logger: logger}
	combiner := combine.New(cfg, prober, muxer, logger)

	req := combine.Request{
		Dir:              opts.dir,
		OutputPath:       opts.output,
		Combine:          opts.combine,
		Clean:            opts.clean,
		DryRun:           opts.dryRun,
		Overrides:        overrides,
		ChapterThreshold: opts.chapterThreshold,
		TitlesFile:       opts.titlesFile,
	}

	result, err := combiner.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		if result.Plan != nil {
			fmt.Fprint(out, renderPlanPreview(result.Plan))
		}
		return nil
	}
	if result.Plan != nil {
		fmt.Fprintf(out, "Combined %d parts of %q into %s\n", len(result.Plan.Inputs), result.Book, result.Plan.OutputPath)
	}
	if len(result.Cleaned) > 0 {
		fmt.Fprintf(out, "Deleted %d part files\n", len(result.Cleaned))
	}
	return nil
}
