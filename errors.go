package outline2html

import (
	"errors"

	"github.com/alnah/go-outline2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrUnknownEngine is returned by NewTranscoder for unregistered engine names.
	ErrUnknownEngine = pipeline.ErrUnknownEngine

	// ErrHTMLConversion wraps transcoder failures. Render calls log it and
	// degrade; it only surfaces from a Transcoder used directly.
	ErrHTMLConversion = pipeline.ErrHTMLConversion

	// ErrFrontMatter indicates a Markdown outline carries unreadable front matter.
	ErrFrontMatter = errors.New("invalid outline front matter")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
