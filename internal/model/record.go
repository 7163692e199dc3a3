package model

import "time"

// Record is the classification result for a single addon directory.
// One record is created per scanned directory during a scan pass and is
// never mutated afterwards.
type Record struct {
	// Name is the addon directory's base name.
	Name string

	// Path is the addon directory's path as scanned.
	Path string

	// OldLayout reports whether the flat-layout marker files were found
	// directly at the addon root.
	OldLayout bool

	// NewLayout reports whether a conforming nested initializer pair was
	// found under a namespace directory anywhere in the addon subtree.
	NewLayout bool
}

// Style returns the classification derived from the two layout flags.
func (r Record) Style() Style {
	return DeriveStyle(r.OldLayout, r.NewLayout)
}

// ScanResult holds the full outcome of one scan pass over an addons root.
// Records keep filesystem enumeration order; no sorting is applied.
type ScanResult struct {
	// Root is the scanned addons root directory.
	Root string

	// ScanDate is when the scan was performed.
	ScanDate time.Time

	// Records holds one entry per scanned addon directory.
	Records []Record
}

// NewScanResult creates an empty result for the given root with the scan
// date set to now.
func NewScanResult(root string) *ScanResult {
	return &ScanResult{
		Root:     root,
		ScanDate: time.Now(),
	}
}

// Summary holds aggregate per-style counts for a scan.
// The four style counts always sum to Total.
type Summary struct {
	// Total is the number of addon directories scanned.
	Total int

	// Old is the number of addons classified as old-style.
	Old int

	// New is the number of addons classified as new-style.
	New int

	// Mixed is the number of addons carrying both layouts.
	Mixed int

	// Unknown is the number of addons matching neither layout.
	Unknown int
}

// Summarize computes the per-style counts over all records.
func (sr *ScanResult) Summarize() Summary {
	s := Summary{Total: len(sr.Records)}
	for _, r := range sr.Records {
		switch r.Style() {
		case StyleOld:
			s.Old++
		case StyleNew:
			s.New++
		case StyleMixed:
			s.Mixed++
		case StyleUnknown:
			s.Unknown++
		}
	}
	return s
}
