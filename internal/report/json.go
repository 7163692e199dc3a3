package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/fcaddons/addonscan/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// jsonRecord is the serialized form of a single record. The derived style
// is materialized here because consumers of the JSON expect it spelled out;
// the model keeps deriving it from the flags.
type jsonRecord struct {
	Name     string `json:"name"`
	Style    string `json:"style"`
	Path     string `json:"path"`
	OldStyle bool   `json:"old_style"`
	NewStyle bool   `json:"new_style"`
}

// jsonReport is the serialized form of a full scan result.
type jsonReport struct {
	Root     string       `json:"root"`
	ScanDate time.Time    `json:"scan_date"`
	Summary  jsonSummary  `json:"summary"`
	Addons   []jsonRecord `json:"addons"`
}

// jsonSummary mirrors model.Summary with stable field names.
type jsonSummary struct {
	Total   int `json:"total"`
	Old     int `json:"old"`
	New     int `json:"new"`
	Mixed   int `json:"mixed"`
	Unknown int `json:"unknown"`
}

// Write outputs the scan result in JSON format.
func (w *JSONWriter) Write(result *model.ScanResult) (int, error) {
	s := result.Summarize()
	out := jsonReport{
		Root:     result.Root,
		ScanDate: result.ScanDate,
		Summary: jsonSummary{
			Total:   s.Total,
			Old:     s.Old,
			New:     s.New,
			Mixed:   s.Mixed,
			Unknown: s.Unknown,
		},
		Addons: make([]jsonRecord, 0, len(result.Records)),
	}

	for _, r := range result.Records {
		out.Addons = append(out.Addons, jsonRecord{
			Name:     r.Name,
			Style:    r.Style().String(),
			Path:     r.Path,
			OldStyle: r.OldLayout,
			NewStyle: r.NewLayout,
		})
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(out, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
