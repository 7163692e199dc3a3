// Package main provides the entry point for the addonscan CLI.
//
// addonscan classifies the addon directories of a FreeCAD-addons checkout
// by their initialization-file layout (legacy flat layout vs. nested
// package layout) and writes a CSV report plus a console summary.
//
// Usage:
//
//	addonscan scan [addons-root]
//	addonscan history [addons-root]
//
// See --help for all available options.
package main

// main is the entry point for addonscan.
func main() {
	Execute()
}
