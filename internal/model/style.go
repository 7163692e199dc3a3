package model

// Style represents the initialization-file layout convention detected in an
// addon directory.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and counting. The String() method provides
// human-readable output when needed.
type Style int

const (
	// StyleUnknown indicates neither layout convention was found.
	// The addon may be broken, a macro collection, or something else entirely.
	StyleUnknown Style = iota

	// StyleOld indicates the legacy flat layout: Init.py and InitGui.py
	// (or their lowercase variants) directly at the addon root.
	StyleOld

	// StyleNew indicates the nested package layout: __init__.py plus an
	// init_gui.py/InitGui.py pair inside a subpackage under a namespace
	// directory (conventionally "freecad").
	StyleNew

	// StyleMixed indicates both layouts are present simultaneously.
	// Addons mid-migration commonly end up in this state.
	StyleMixed
)

// String returns the lowercase name of the style as used in reports.
func (s Style) String() string {
	switch s {
	case StyleOld:
		return "old"
	case StyleNew:
		return "new"
	case StyleMixed:
		return "mixed"
	case StyleUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined style values.
func (s Style) IsValid() bool {
	switch s {
	case StyleUnknown, StyleOld, StyleNew, StyleMixed:
		return true
	default:
		return false
	}
}

// ParseStyle converts a style name back to its Style value.
// Unrecognized names map to StyleUnknown.
func ParseStyle(name string) Style {
	switch name {
	case "old":
		return StyleOld
	case "new":
		return StyleNew
	case "mixed":
		return StyleMixed
	default:
		return StyleUnknown
	}
}

// DeriveStyle computes the style from the two layout-detection results.
// Exactly one style applies for each combination:
//
//	old     iff oldLayout and not newLayout
//	new     iff newLayout and not oldLayout
//	mixed   iff both
//	unknown iff neither
//
// The style is always derived from the booleans, never stored independently,
// so a record can never carry a style that contradicts its detection flags.
func DeriveStyle(oldLayout, newLayout bool) Style {
	switch {
	case oldLayout && !newLayout:
		return StyleOld
	case newLayout && !oldLayout:
		return StyleNew
	case oldLayout && newLayout:
		return StyleMixed
	default:
		return StyleUnknown
	}
}
