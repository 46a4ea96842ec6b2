package plan

import (
	"fmt"

	"bookbind/internal/probe"
)

// CombinePlan is the fully resolved description of one combine operation.
// It is assembled once per run, never mutated, and is the sole input handed
// to the encode/mux engine.
type CombinePlan struct {
	Inputs     []probe.File
	Chapters   []Chapter
	Params     EncodingParams
	Metadata   Metadata
	OutputPath string
	DryRun     bool
	CleanParts bool
}

// Assemble composes the resolved pieces into a CombinePlan. It re-asserts
// the invariants already established by the individual resolvers; any
// failure here indicates a bug upstream, not bad user input.
func Assemble(inputs []probe.File, chapters []Chapter, params EncodingParams, md Metadata, outputPath string, dryRun, cleanParts bool) (*CombinePlan, error) {
	if len(inputs) != len(chapters) {
		return nil, &LengthMismatchError{Durations: len(inputs), Titles: len(chapters)}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("assemble plan: no input files")
	}
	if outputPath == "" {
		return nil, fmt.Errorf("assemble plan: empty output path")
	}

	if chapters[0].Start != 0 {
		return nil, fmt.Errorf("assemble plan: first chapter starts at %v, not 0", chapters[0].Start)
	}
	for i, c := range chapters {
		if c.End <= c.Start {
			return nil, fmt.Errorf("assemble plan: chapter %d end %v is not after start %v", c.Index, c.End, c.Start)
		}
		if i > 0 && chapters[i-1].End != c.Start {
			return nil, fmt.Errorf("assemble plan: gap between chapter %d and %d", chapters[i-1].Index, c.Index)
		}
	}

	switch params.Mode {
	case ModeCBR:
		if params.Bitrate == "" {
			return nil, fmt.Errorf("assemble plan: cbr mode without bitrate")
		}
	case ModeVBR:
		if params.Quality < QualityMin || params.Quality > QualityMax {
			return nil, fmt.Errorf("assemble plan: vbr quality %d out of range", params.Quality)
		}
	default:
		return nil, fmt.Errorf("assemble plan: unknown mode %q", params.Mode)
	}

	return &CombinePlan{
		Inputs:     inputs,
		Chapters:   chapters,
		Params:     params,
		Metadata:   md,
		OutputPath: outputPath,
		DryRun:     dryRun,
		CleanParts: cleanParts,
	}, nil
}

// InputPaths returns the ordered input file paths.
func (p *CombinePlan) InputPaths() []string {
	paths := make([]string, 0, len(p.Inputs))
	for _, input := range p.Inputs {
		paths = append(paths, input.Path)
	}
	return paths
}

// TotalDuration returns the planned output duration in seconds.
func (p *CombinePlan) TotalDuration() float64 {
	return TotalDuration(p.Chapters)
}
