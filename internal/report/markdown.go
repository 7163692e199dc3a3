package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/fcaddons/addonscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing, for example as a
// tracking page for an addon-migration effort.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. Mermaid chart embedding
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scan result in Markdown format.
func (w *MarkdownWriter) Write(result *model.ScanResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeAddons(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ScanResult) {
	md.H1("Workbench Layout Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Addons Root", "`" + result.Root + "`"},
			{"Scan Date", result.ScanDate.Format("2006-01-02 15:04:05 MST")},
			{"Addons Scanned", strconv.Itoa(len(result.Records))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the per-style summary table and distribution chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.ScanResult) {
	s := result.Summarize()

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Style", "Count"},
		Rows: [][]string{
			{"Old-style", strconv.Itoa(s.Old)},
			{"New-style", strconv.Itoa(s.New)},
			{"Mixed", strconv.Itoa(s.Mixed)},
			{"Unknown", strconv.Itoa(s.Unknown)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**"},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}
}

// writePieChart writes a mermaid pie chart for the style distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Layout Style Distribution"),
		piechart.WithShowData(true),
	)

	if s.Old > 0 {
		chart.LabelAndIntValue("Old-style", uint64(s.Old))
	}
	if s.New > 0 {
		chart.LabelAndIntValue("New-style", uint64(s.New))
	}
	if s.Mixed > 0 {
		chart.LabelAndIntValue("Mixed", uint64(s.Mixed))
	}
	if s.Unknown > 0 {
		chart.LabelAndIntValue("Unknown", uint64(s.Unknown))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAddons writes the per-addon classification table.
func (w *MarkdownWriter) writeAddons(md *markdown.Markdown, result *model.ScanResult) {
	md.H2("Addons")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Records))
	for _, r := range result.Records {
		rows = append(rows, []string{
			r.Name,
			r.Style().String(),
			"`" + r.Path + "`",
			strconv.FormatBool(r.OldLayout),
			strconv.FormatBool(r.NewLayout),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Style", "Path", "Old Style", "New Style"},
		Rows:   rows,
	})
}
