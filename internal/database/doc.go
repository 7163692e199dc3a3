// Package database provides SQLite-based storage for scan history.
//
// Each scan run is stored with its aggregate counts plus every per-addon
// record, so later runs can be listed and diffed against earlier ones.
//
// Design decision: We use modernc.org/sqlite (a pure-Go driver) via
// database/sql so the tool builds without cgo on every platform.
package database
