package plan

// Chapter is one marker on the output timeline. Chapters are contiguous:
// each chapter's End equals the next chapter's Start.
type Chapter struct {
	Index int
	Title string
	Start float64
	End   float64
}

// BuildTimeline computes cumulative start/end offsets for each part. The
// running-offset construction guarantees contiguity and that the final End
// equals the sum of all durations.
func BuildTimeline(durations []float64, titles []string) ([]Chapter, error) {
	if len(durations) != len(titles) {
		return nil, &LengthMismatchError{Durations: len(durations), Titles: len(titles)}
	}

	chapters := make([]Chapter, 0, len(durations))
	offset := 0.0
	for i, duration := range durations {
		chapters = append(chapters, Chapter{
			Index: i + 1,
			Title: titles[i],
			Start: offset,
			End:   offset + duration,
		})
		offset += duration
	}
	return chapters, nil
}

// TotalDuration returns the end offset of the final chapter, or 0 for an
// empty timeline.
func TotalDuration(chapters []Chapter) float64 {
	if len(chapters) == 0 {
		return 0
	}
	return chapters[len(chapters)-1].End
}
