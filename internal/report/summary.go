package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fcaddons/addonscan/internal/model"
)

// SummaryWriter outputs the console summary block: the total addon count
// and the per-style counts under fixed labels. The labels and their column
// widths are part of the console contract; scripts grep this output.
type SummaryWriter struct {
	baseWriter
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
	}
}

// summaryRule is the separator line framing the summary block.
var summaryRule = strings.Repeat("-", 28)

// Write outputs the summary block for the scan result.
func (w *SummaryWriter) Write(result *model.ScanResult) (int, error) {
	s := result.Summarize()

	var sb strings.Builder
	sb.WriteString("\nSummary\n")
	sb.WriteString(summaryRule + "\n")
	fmt.Fprintf(&sb, "%-21s: %d\n", "Total addons scanned", s.Total)
	fmt.Fprintf(&sb, "%-21s: %d\n", "Old-style", s.Old)
	fmt.Fprintf(&sb, "%-21s: %d\n", "New-style", s.New)
	fmt.Fprintf(&sb, "%-21s: %d\n", "Mixed", s.Mixed)
	fmt.Fprintf(&sb, "%-21s: %d\n", "Unknown", s.Unknown)
	sb.WriteString(summaryRule + "\n")

	return w.output.Write([]byte(sb.String()))
}
