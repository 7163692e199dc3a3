package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The detection defaults mirror the FreeCAD-addons repository conventions.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "addonscan"

	// HousekeepingDirName is the top-level directory reserved for the
	// tool's own files inside an addons checkout. It is never scanned
	// as an addon, matched by exact name at the top level only.
	HousekeepingDirName = "utils"

	// DefaultNamespaceDir is the directory name that anchors the nested
	// package layout. New-style addons place their initializer pair in a
	// subpackage under a directory with this exact name.
	DefaultNamespaceDir = "freecad"

	// DefaultMaxDepth bounds the recursive namespace-directory search.
	// Real addons nest the namespace directory at most a few levels down;
	// 16 leaves generous headroom while guaranteeing the walk terminates
	// on pathological trees.
	DefaultMaxDepth = 16

	// DefaultReportFileName is the CSV report file name, written into the
	// housekeeping directory unless an explicit output path is given.
	DefaultReportFileName = "workbench_report.csv"
)

// Config holds all configuration options for addonscan.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Root is the addons root directory to scan. Its immediate child
	// directories are the addons.
	Root string

	// OutputPath is the destination of the CSV report. The file is
	// created or truncated on every run.
	OutputPath string

	// MarkdownPath, when non-empty, is the destination for an additional
	// Markdown rendition of the report.
	MarkdownPath string

	// JSONPath, when non-empty, is the destination for an additional
	// JSON rendition of the report.
	JSONPath string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .addonscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// NamespaceDir is the directory name that anchors the nested layout.
	NamespaceDir string

	// ExcludeDirs lists additional top-level directory names to skip,
	// beyond the always-excluded housekeeping directory.
	ExcludeDirs []string

	// MaxDepth bounds the recursive namespace-directory search per addon.
	MaxDepth int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// SaveHistory indicates whether to record the scan run in the local
	// history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; callers override
// specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero (namespace name,
// depth bound). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		NamespaceDir: DefaultNamespaceDir,
		MaxDepth:     DefaultMaxDepth,
		SaveHistory:  true,
		DBDir:        XDGDataDir(),
	}
}

// DefaultOutputPath returns the CSV destination used when no explicit
// output path is configured: the report file inside the housekeeping
// directory under the scan root. This matches where the report has
// historically lived in addons checkouts.
func (c *Config) DefaultOutputPath() string {
	return filepath.Join(c.Root, HousekeepingDirName, DefaultReportFileName)
}

// XDGDataDir returns the XDG data directory for addonscan.
// On Linux: ~/.local/share/addonscan
// On macOS: ~/Library/Application Support/addonscan
// On Windows: %LOCALAPPDATA%\addonscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for addonscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scanning begins.
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}

	if c.OutputPath == "" {
		return ErrNoOutputPath
	}

	if c.MaxDepth <= 0 {
		return ErrInvalidMaxDepth
	}

	if c.NamespaceDir == "" {
		return ErrEmptyNamespaceDir
	}

	return nil
}
