// Package log provides logging utilities for addonscan.
//
// It contains TidyPathHandler, a slog.Handler wrapper that rewrites
// path-valued attributes into ~-relative form. A scan touches hundreds of
// directories under the same root, and untrimmed absolute paths drown the
// interesting part of every log line.
package log
