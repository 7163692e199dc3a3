package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// TidyPathHandler wraps another slog.Handler and rewrites string attribute
// values that point under the user's home directory to ~-relative form.
// Only string values are touched; groups are traversed recursively.
type TidyPathHandler struct {
	// inner is the wrapped handler that performs the actual output.
	inner slog.Handler

	// home is the home directory prefix to abbreviate, without a
	// trailing separator. Empty disables rewriting.
	home string
}

// NewTidyPathHandler wraps the given handler.
// If the home directory cannot be determined, attributes pass through
// unchanged.
func NewTidyPathHandler(inner slog.Handler) *TidyPathHandler {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return newTidyPathHandler(inner, home)
}

// newTidyPathHandler is the testable constructor with an explicit home.
func newTidyPathHandler(inner slog.Handler, home string) *TidyPathHandler {
	return &TidyPathHandler{
		inner: inner,
		home:  strings.TrimRight(home, string(os.PathSeparator)),
	}
}

// Enabled reports whether the wrapped handler handles records at the level.
func (h *TidyPathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and forwards it.
func (h *TidyPathHandler) Handle(ctx context.Context, r slog.Record) error {
	nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		nr.AddAttrs(h.tidyAttr(a))
		return true
	})
	return h.inner.Handle(ctx, nr)
}

// WithAttrs returns a handler whose wrapped handler carries the rewritten
// attributes.
func (h *TidyPathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tidied := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		tidied = append(tidied, h.tidyAttr(a))
	}
	return &TidyPathHandler{
		inner: h.inner.WithAttrs(tidied),
		home:  h.home,
	}
}

// WithGroup returns a handler with the group opened on the wrapped handler.
func (h *TidyPathHandler) WithGroup(name string) slog.Handler {
	return &TidyPathHandler{
		inner: h.inner.WithGroup(name),
		home:  h.home,
	}
}

// tidyAttr rewrites a single attribute, descending into groups.
func (h *TidyPathHandler) tidyAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(h.tidyPath(a.Value.String()))
	case slog.KindGroup:
		attrs := a.Value.Group()
		tidied := make([]slog.Attr, 0, len(attrs))
		for _, ga := range attrs {
			tidied = append(tidied, h.tidyAttr(ga))
		}
		a.Value = slog.GroupValue(tidied...)
	}
	return a
}

// tidyPath abbreviates a home-prefixed absolute path; other strings pass
// through unchanged.
func (h *TidyPathHandler) tidyPath(s string) string {
	if h.home == "" {
		return s
	}
	if s == h.home {
		return "~"
	}
	prefix := h.home + string(os.PathSeparator)
	if strings.HasPrefix(s, prefix) {
		return "~" + string(os.PathSeparator) + strings.TrimPrefix(s, prefix)
	}
	return s
}
