package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/fcaddons/addonscan/internal/model"
)

// csvHeader is the fixed five-column schema of the tabular report.
// The column order is part of the report contract and never changes.
var csvHeader = []string{"name", "style", "path", "old_style", "new_style"}

// CSVWriter outputs the canonical tabular report: the header row followed
// by one row per record in scan order. Booleans are rendered as the Go
// canonical tokens "true" and "false", consistently across rows and runs,
// so an unchanged tree always produces byte-identical output.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the scan result as CSV.
func (w *CSVWriter) Write(result *model.ScanResult) (int, error) {
	counter := &countingWriter{inner: w.output}
	cw := csv.NewWriter(counter)

	if err := cw.Write(csvHeader); err != nil {
		return counter.n, err
	}

	for _, r := range result.Records {
		row := []string{
			r.Name,
			r.Style().String(),
			r.Path,
			strconv.FormatBool(r.OldLayout),
			strconv.FormatBool(r.NewLayout),
		}
		if err := cw.Write(row); err != nil {
			return counter.n, err
		}
	}

	cw.Flush()
	return counter.n, cw.Error()
}
