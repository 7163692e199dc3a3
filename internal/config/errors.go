package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when no scan root could be determined.
	// This happens when no root argument is given and the executable's
	// location cannot be resolved for the self-locating default.
	ErrNoRoot = errors.New("no scan root specified: pass the addons root as an argument")

	// ErrNoOutputPath is returned when the CSV output path is empty.
	ErrNoOutputPath = errors.New("no output path: the CSV report needs a destination")

	// ErrInvalidMaxDepth is returned when the traversal depth bound is not
	// positive. A bound of zero would prevent the nested-layout search from
	// descending into the addon at all.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be positive")

	// ErrEmptyNamespaceDir is returned when the namespace directory name is
	// empty. The nested-layout detector anchors its search on this name.
	ErrEmptyNamespaceDir = errors.New("invalid namespace directory: must not be empty")
)
