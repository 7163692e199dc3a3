// Package model defines the core data structures used throughout addonscan.
//
// This package contains the following main types:
//   - Style: The four-valued layout classification of an addon directory
//   - Record: The classification result for a single addon directory
//   - ScanResult: The full result of one scan pass over an addons root
//   - Summary: Aggregate per-style counts derived from a scan result
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (classify, report, database) need to use
// these types, so centralizing them prevents import cycles.
package model
