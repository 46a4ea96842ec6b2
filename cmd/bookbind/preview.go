package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"bookbind/internal/plan"
)

// renderPlanPreview produces the human-readable dry-run rendering of a
// combine plan: the chapter timeline, resolved encoding parameters, and the
// merged metadata.
func renderPlanPreview(p *plan.CombinePlan) string {
	var b strings.Builder

	b.WriteString(heading("Dry run: no files will be written"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(p.Chapters))
	for i, chapter := range p.Chapters {
		rows = append(rows, []string{
			strconv.Itoa(chapter.Index),
			chapter.Title,
			formatOffset(chapter.Start),
			formatOffset(chapter.End),
			formatOffset(chapter.End - chapter.Start),
			shortPath(p.Inputs[i].Path),
		})
	}
	b.WriteString(renderTable(
		[]string{"##", "Title", "Start", "End", "Length", "Source"},
		rows,
		0, 2, 3, 4,
	))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Output:   %s\n", p.OutputPath)
	fmt.Fprintf(&b, "Duration: %s (%d chapters)\n", formatOffset(p.TotalDuration()), len(p.Chapters))
	fmt.Fprintf(&b, "Encoding: %s\n", describeParams(p.Params))

	if len(p.Metadata.Tags) > 0 {
		b.WriteString("Metadata:\n")
		keys := make([]string, 0, len(p.Metadata.Tags))
		for key := range p.Metadata.Tags {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", key, p.Metadata.Tags[key])
		}
	}
	if p.Metadata.CoverArtSource != "" {
		fmt.Fprintf(&b, "Cover:    from %s\n", shortPath(p.Metadata.CoverArtSource))
	}
	if p.CleanParts {
		fmt.Fprintf(&b, "Cleanup:  %d part files would be deleted after a successful combine\n", len(p.Inputs))
	}

	return b.String()
}

func describeParams(params plan.EncodingParams) string {
	var desc string
	switch params.Mode {
	case plan.ModeVBR:
		desc = fmt.Sprintf("AAC VBR quality %d", params.Quality)
	default:
		desc = fmt.Sprintf("AAC CBR %s", params.Bitrate)
	}
	if params.SampleRate > 0 {
		return fmt.Sprintf("%s, %d Hz", desc, params.SampleRate)
	}
	return desc + ", source sample rate"
}

// formatOffset renders a second offset as h:mm:ss.mmm.
func formatOffset(seconds float64) string {
	millis := int64(math.Round(seconds * 1000))
	h := millis / 3_600_000
	millis -= h * 3_600_000
	m := millis / 60_000
	millis -= m * 60_000
	s := millis / 1000
	millis -= s * 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, millis)
}

func shortPath(path string) string {
	if idx := strings.LastIndexByte(path, os.PathSeparator); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func heading(message string) string {
	if isTerminal(os.Stdout.Fd()) {
		return text.Colors{text.FgHiYellow, text.Bold}.Sprint(message)
	}
	return message
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable renders a rounded-border table. Numeric and offset columns are
// named by index in rightAligned; everything else stays left-aligned.
func renderTable(headers []string, rows [][]string, rightAligned ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	right := make(map[int]bool, len(rightAligned))
	for _, column := range rightAligned {
		right[column] = true
	}
	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if right[i] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
