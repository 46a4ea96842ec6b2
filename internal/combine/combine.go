package combine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"bookbind/internal/config"
	"bookbind/internal/deps"
	"bookbind/internal/logging"
	"bookbind/internal/mux"
	"bookbind/internal/parts"
	"bookbind/internal/plan"
	"bookbind/internal/probe"
	"bookbind/internal/staging"
)

// Staging directories older than this are leftovers from interrupted runs.
const staleStagingAge = 24 * time.Hour

// Request describes one invocation.
type Request struct {
	// Dir is the directory holding the part files.
	Dir string
	// OutputPath overrides the default "<book>.m4b" next to the parts.
	OutputPath string
	// Combine runs the combine step; Clean deletes part files afterwards
	// (or on its own when the output already exists).
	Combine bool
	Clean   bool
	DryRun  bool

	Overrides        plan.Overrides
	ChapterThreshold int
	TitlesFile       string
}

// Result reports what a run did (or, for a dry run, would do).
type Result struct {
	Book        string
	Plan        *plan.CombinePlan
	Cleaned     []string
	InputBytes  int64
	OutputBytes int64
}

// Combiner wires the planner to its collaborators.
type Combiner struct {
	cfg    *config.Config
	prober probe.Prober
	muxer  mux.Muxer
	logger *slog.Logger
}

// New constructs a Combiner. A nil logger discards output.
func New(cfg *config.Config, prober probe.Prober, muxer mux.Muxer, logger *slog.Logger) *Combiner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Combiner{cfg: cfg, prober: prober, muxer: muxer, logger: logger}
}

// Run plans and, unless dry-running, executes one combine invocation.
func (c *Combiner) Run(ctx context.Context, req Request) (*Result, error) {
	book, paths, err := parts.Discover(req.Dir)
	if err != nil {
		return nil, err
	}
	c.logger.Info("discovered parts",
		logging.String("book", book),
		logging.Int("parts", len(paths)),
	)

	output := strings.TrimSpace(req.OutputPath)
	if output == "" {
		output = filepath.Join(req.Dir, book+".m4b")
	}

	result := &Result{Book: book}

	if !req.Combine {
		if !req.Clean {
			return nil, fmt.Errorf("nothing to do: neither combine nor clean requested")
		}
		return c.cleanExisting(result, output, paths, req.DryRun)
	}

	// One combine per book directory at a time; a second invocation would
	// race on the staged output and the part files.
	lock := flock.New(filepath.Join(req.Dir, ".bookbind.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another bookbind run is already combining %s", req.Dir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	p, err := c.buildPlan(ctx, req, paths, output)
	if err != nil {
		return nil, err
	}
	result.Plan = p

	if req.DryRun {
		c.logger.Info("dry run: plan assembled, no files written",
			logging.String("output", output),
			logging.Int("chapters", len(p.Chapters)),
		)
		return result, nil
	}

	if err := deps.Verify(deps.Default(c.cfg.Tools.FFmpeg, c.cfg.Tools.FFprobe)); err != nil {
		return nil, err
	}

	staging.CleanStale(c.cfg.Paths.StagingDir, staleStagingAge, c.logger)
	work, err := staging.New(c.cfg.Paths.StagingDir, c.logger)
	if err != nil {
		return nil, err
	}
	defer work.Cleanup()

	if err := c.muxer.EncodeAndMux(ctx, p, work.Root); err != nil {
		return nil, err
	}

	c.reportSizes(result, p)

	if req.Clean {
		result.Cleaned = c.removeParts(paths)
	}
	return result, nil
}

// cleanExisting handles the clean-only invocation: part files are deleted
// only when the combined output is already on disk.
func (c *Combiner) cleanExisting(result *Result, output string, paths []string, dryRun bool) (*Result, error) {
	if _, err := os.Stat(output); err != nil {
		return nil, fmt.Errorf("cannot clean: %s does not exist", output)
	}
	if dryRun {
		c.logger.Info("dry run: would delete part files", logging.Int("parts", len(paths)))
		return result, nil
	}
	result.Cleaned = c.removeParts(paths)
	return result, nil
}

func (c *Combiner) buildPlan(ctx context.Context, req Request, paths []string, output string) (*plan.CombinePlan, error) {
	files, err := probe.All(ctx, c.prober, paths)
	if err != nil {
		return nil, err
	}

	params, err := plan.ResolveParams(files[0].Bitrate, req.Overrides)
	if err != nil {
		return nil, err
	}

	threshold := req.ChapterThreshold
	if threshold < 1 {
		threshold = c.cfg.Combine.ChapterThreshold
	}
	titles, err := plan.ResolveTitles(len(files), req.TitlesFile, threshold)
	if err != nil {
		return nil, err
	}

	durations := make([]float64, 0, len(files))
	for _, file := range files {
		durations = append(durations, file.Duration)
	}
	chapters, err := plan.BuildTimeline(durations, titles)
	if err != nil {
		return nil, err
	}

	md := plan.MergeMetadata(files, c.cfg.Combine.MetadataTags)

	return plan.Assemble(files, chapters, params, md, output, req.DryRun, req.Clean)
}

func (c *Combiner) removeParts(paths []string) []string {
	removed := make([]string, 0, len(paths))
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			c.logger.Warn("failed to delete part file",
				logging.String("path", path),
				logging.Error(err),
			)
			continue
		}
		c.logger.Info("deleted part file", logging.String("path", path))
		removed = append(removed, path)
	}
	return removed
}

func (c *Combiner) reportSizes(result *Result, p *plan.CombinePlan) {
	var inputBytes int64
	for _, input := range p.Inputs {
		if info, err := os.Stat(input.Path); err == nil {
			inputBytes += info.Size()
		}
	}
	result.InputBytes = inputBytes

	info, err := os.Stat(p.OutputPath)
	if err != nil {
		return
	}
	result.OutputBytes = info.Size()

	if result.OutputBytes > 0 {
		ratio := float64(inputBytes) / float64(result.OutputBytes)
		c.logger.Info("combine finished",
			logging.String("output", p.OutputPath),
			logging.Int64("input_bytes", inputBytes),
			logging.Int64("output_bytes", result.OutputBytes),
			logging.Float64("size_ratio", ratio),
		)
	}
}
