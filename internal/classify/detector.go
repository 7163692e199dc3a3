package classify

import (
	"os"
	"path/filepath"

	"github.com/fcaddons/addonscan/internal/config"
)

// Marker file names recognized by the detectors. The convention accepts
// exactly two spellings per marker; this is not general case-insensitive
// matching, and no other permutations are valid.
var (
	oldInitNames = [...]string{"Init.py", "init.py"}
	oldGUINames  = [...]string{"InitGui.py", "initgui.py"}
	newGUINames  = [...]string{"init_gui.py", "InitGui.py"}
)

// newInitName is the package initializer required by the nested layout.
const newInitName = "__init__.py"

// Detector performs the layout-existence checks for a single addon directory.
// The zero value is not usable; construct with NewDetector.
type Detector struct {
	// namespaceDir is the directory name anchoring the nested layout.
	namespaceDir string

	// maxDepth bounds the recursive namespace search below the addon root.
	maxDepth int
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithNamespaceDir overrides the namespace directory name.
func WithNamespaceDir(name string) DetectorOption {
	return func(d *Detector) {
		d.namespaceDir = name
	}
}

// WithMaxDepth overrides the traversal depth bound.
func WithMaxDepth(depth int) DetectorOption {
	return func(d *Detector) {
		d.maxDepth = depth
	}
}

// NewDetector creates a Detector with default settings.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{
		namespaceDir: config.DefaultNamespaceDir,
		maxDepth:     config.DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// HasOldLayout reports whether the addon directory carries the legacy flat
// layout: a marker-init file and a marker-gui file directly at the addon
// root. Both checks are existence-only. A missing or unreadable directory
// simply yields false; no error is surfaced for absent files.
func (d *Detector) HasOldLayout(dir string) bool {
	return anyFileExists(dir, oldInitNames[:]) && anyFileExists(dir, oldGUINames[:])
}

// HasNewLayout reports whether the addon subtree carries the nested package
// layout: any directory named after the namespace anchor containing a child
// directory with __init__.py and one of the gui-initializer spellings.
// The search short-circuits on the first conforming child. Multiple
// namespace directories (vendored copies included) are each inspected.
//
// Errors reading intermediate directories propagate and abort the scan;
// a missing addon directory yields false.
func (d *Detector) HasNewLayout(dir string) (bool, error) {
	visited := make(map[string]struct{})
	return d.searchNamespace(dir, 0, visited)
}

// searchNamespace walks the subtree looking for namespace directories.
// depth counts levels below the addon root; the walk prunes past maxDepth.
// visited holds resolved directory paths so symlink cycles terminate.
func (d *Detector) searchNamespace(dir string, depth int, visited map[string]struct{}) (bool, error) {
	if depth > d.maxDepth {
		return false, nil
	}

	// Key the visited set on the resolved path so a symlink back into an
	// ancestor is recognized. If resolution fails (dangling link, racing
	// delete) fall back to the lexical path.
	key := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		key = resolved
	}
	if _, ok := visited[key]; ok {
		return false, nil
	}
	visited[key] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())

		// Follow directory symlinks; the visited set above keeps
		// link cycles from recursing forever.
		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(child)
			isDir = err == nil && info.IsDir()
		}
		if !isDir {
			continue
		}

		if entry.Name() == d.namespaceDir {
			ok, err := d.hasConformingSubpackage(child)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}

		ok, err := d.searchNamespace(child, depth+1, visited)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

// hasConformingSubpackage checks the immediate child directories of a
// namespace directory for the nested initializer pair.
func (d *Detector) hasConformingSubpackage(nsDir string) (bool, error) {
	entries, err := os.ReadDir(nsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		sub := filepath.Join(nsDir, entry.Name())
		if fileExists(filepath.Join(sub, newInitName)) && anyFileExists(sub, newGUINames[:]) {
			return true, nil
		}
	}

	return false, nil
}

// fileExists reports whether path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// anyFileExists reports whether any of the named files exists directly
// inside dir.
func anyFileExists(dir string, names []string) bool {
	for _, name := range names {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}
