// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// NoColorSet reports whether the NO_COLOR convention is in effect.
var NoColorSet = func() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first user config location (under go-mdspan/)
	marker := string(filepath.Separator) + "go-mdspan" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMalformedEntity returns a hint for numeric character references that
// could not be decoded.
func ForMalformedEntity(reference string) string {
	if reference == "" {
		return format("escape a literal ampersand as &amp;")
	}
	return format("escape the ampersand in " + reference + " as &amp; or fix the code point")
}

// ForInvalidBaseURL returns a hint for rejected base URLs.
func ForInvalidBaseURL() string {
	return format("use an absolute URL such as https://www.reddit.com")
}

// ForUnknownValue returns the accepted values for an enumerated option.
func ForUnknownValue(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForInputTooLarge returns hints for inputs over the size limit.
func ForInputTooLarge() string {
	return format("split the input into smaller files")
}

// ForColor returns a hint when color was requested but is suppressed.
func ForColor() string {
	var hints []string
	if NoColorSet() {
		hints = append(hints, "unset NO_COLOR")
	}
	hints = append(hints, "use --color always when piping")
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
