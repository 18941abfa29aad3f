// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// userConfigMarker identifies the user config directory among searched paths.
const userConfigMarker = "go-outline2html"

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, userConfigMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	return forAvailable(available)
}

// ForTemplateSetNotFound returns hints for template set not found errors.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return format("a template set directory needs header.html and footer.html")
	}
	return forAvailable(available)
}

// ForUnknownEngine returns hints listing the registered Markdown engines.
func ForUnknownEngine(engines []string) string {
	if len(engines) == 0 {
		return ""
	}
	return format("use --engine " + strings.Join(engines, " or --engine "))
}

// ForInvalidColor returns hints for theme color errors.
func ForInvalidColor() string {
	return format("use a hex color like #1E1E1E, rgb(30, 30, 30) or a CSS color name")
}

// forAvailable lists valid choices.
func forAvailable(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
