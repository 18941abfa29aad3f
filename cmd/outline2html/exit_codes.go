package main

import (
	"errors"
	"os"
	"strings"

	outline2html "github.com/alnah/go-outline2html"
	"github.com/alnah/go-outline2html/internal/config"
	"github.com/alnah/go-outline2html/internal/dateutil"
	"github.com/alnah/go-outline2html/internal/hints"
)

// Exit codes for the outline2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All outlines exported
	ExitGeneral = 1 // General/unexpected error, or some files failed
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrEnvFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, outline2html.ErrUnknownEngine) ||
		errors.Is(err, outline2html.ErrFrontMatter) ||
		errors.Is(err, outline2html.ErrStyleNotFound) ||
		errors.Is(err, outline2html.ErrTemplateSetNotFound) ||
		errors.Is(err, outline2html.ErrIncompleteTemplateSet) ||
		errors.Is(err, outline2html.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}

// errorHints returns hints for errors whose message does not carry one yet.
func errorHints(err error) string {
	if err == nil || strings.Contains(err.Error(), "hint:") {
		return ""
	}
	switch {
	case errors.Is(err, config.ErrInvalidValue) && strings.Contains(err.Error(), "CSS color"):
		return hints.ForInvalidColor()
	case errors.Is(err, config.ErrInvalidValue) && strings.Contains(err.Error(), "markdown.engine"):
		return hints.ForUnknownEngine(outline2html.EngineNames())
	case errors.Is(err, ErrInvalidOptions), errors.Is(err, ErrNoInput):
		return "\n  hint: run 'outline2html --help' for usage"
	default:
		return ""
	}
}
