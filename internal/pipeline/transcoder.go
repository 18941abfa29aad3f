package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for transcoding.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown markdown engine")
)

// Engine names accepted by NewTranscoder.
const (
	EngineGoldmark   = "goldmark"
	EngineGomarkdown = "gomarkdown"

	// DefaultEngine is used when no engine is configured.
	DefaultEngine = EngineGoldmark
)

// Transcoder converts Markdown text to an HTML fragment.
//
// Output is a pure function of the text and the options last passed to
// SetOptions. Malformed Markdown must degrade to best-effort HTML rather
// than fail; the error return is reserved for writer failures. Unknown
// option bits are ignored.
type Transcoder interface {
	SetOptions(opts Options)
	ToHTML(markdown string) (string, error)
}

// TranscoderOption configures the built-in transcoders.
type TranscoderOption func(*transcoderConfig)

// transcoderConfig holds settings shared by the built-in engines.
type transcoderConfig struct {
	codeStyle string
}

// DefaultCodeStyle is the chroma style used for syntax highlighting.
const DefaultCodeStyle = "github"

// WithCodeStyle sets the chroma style name used when code highlighting is on.
// An empty name keeps DefaultCodeStyle.
func WithCodeStyle(name string) TranscoderOption {
	return func(c *transcoderConfig) {
		if name != "" {
			c.codeStyle = name
		}
	}
}

func newTranscoderConfig(opts []TranscoderOption) transcoderConfig {
	cfg := transcoderConfig{codeStyle: DefaultCodeStyle}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// engines maps engine names to constructors.
var engines = map[string]func(...TranscoderOption) Transcoder{
	EngineGoldmark:   func(opts ...TranscoderOption) Transcoder { return NewGoldmarkTranscoder(opts...) },
	EngineGomarkdown: func(opts ...TranscoderOption) Transcoder { return NewGomarkdownTranscoder(opts...) },
}

// NewTranscoder creates a transcoder by engine name (case-insensitive).
// An empty name selects DefaultEngine.
func NewTranscoder(engine string, opts ...TranscoderOption) (Transcoder, error) {
	name := strings.ToLower(strings.TrimSpace(engine))
	if name == "" {
		name = DefaultEngine
	}
	ctor, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, engine, strings.Join(EngineNames(), ", "))
	}
	return ctor(opts...), nil
}

// EngineNames returns the registered engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
