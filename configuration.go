package outline2html

import "github.com/alnah/go-outline2html/internal/pipeline"

// TranscoderOptions is the option bitmask pushed to a Transcoder.
type TranscoderOptions = pipeline.Options

// Option bits. Transcoders ignore bits they do not know.
const (
	OptionMath           = pipeline.OptionMath
	OptionDiagrams       = pipeline.OptionDiagrams
	OptionCodeHighlight  = pipeline.OptionCodeHighlight
	OptionHardWraps      = pipeline.OptionHardWraps
	OptionRawHTML        = pipeline.OptionRawHTML
	OptionHeadingIDs     = pipeline.OptionHeadingIDs
	OptionHighlightMarks = pipeline.OptionHighlightMarks
	OptionFootnotes      = pipeline.OptionFootnotes
	OptionSanitize       = pipeline.OptionSanitize

	// OptionsUnset is never produced by TranscoderOptionsFor.
	OptionsUnset = pipeline.OptionsUnset
)

// Configuration is the host-owned, read-only view of the settings that
// decide which transcoder options are active.
type Configuration interface {
	MathEnabled() bool
	DiagramsEnabled() bool
	CodeHighlightEnabled() bool
	HardWrapsEnabled() bool
	RawHTMLEnabled() bool
	HeadingIDsEnabled() bool
	HighlightMarksEnabled() bool
	FootnotesEnabled() bool
	SanitizeEnabled() bool
}

// Settings is a plain Configuration. Fields may be changed between render
// calls; the next call observes the change.
type Settings struct {
	Math           bool // $inline$ and $$display$$ math for MathJax
	Diagrams       bool // ```mermaid blocks
	CodeHighlight  bool
	HardWraps      bool // Newlines in paragraphs become <br>
	RawHTML        bool // Pass raw HTML through
	HeadingIDs     bool
	HighlightMarks bool // ==text== becomes <mark>
	Footnotes      bool
	Sanitize       bool // Strip scripts and unsafe attributes from output
}

// DefaultSettings returns the settings used when no Configuration is given.
func DefaultSettings() *Settings {
	return &Settings{
		CodeHighlight:  true,
		HeadingIDs:     true,
		HighlightMarks: true,
		Footnotes:      true,
	}
}

func (s *Settings) MathEnabled() bool           { return s.Math }
func (s *Settings) DiagramsEnabled() bool       { return s.Diagrams }
func (s *Settings) CodeHighlightEnabled() bool  { return s.CodeHighlight }
func (s *Settings) HardWrapsEnabled() bool      { return s.HardWraps }
func (s *Settings) RawHTMLEnabled() bool        { return s.RawHTML }
func (s *Settings) HeadingIDsEnabled() bool     { return s.HeadingIDs }
func (s *Settings) HighlightMarksEnabled() bool { return s.HighlightMarks }
func (s *Settings) FootnotesEnabled() bool      { return s.Footnotes }
func (s *Settings) SanitizeEnabled() bool       { return s.Sanitize }

// TranscoderOptionsFor derives the option bitmask from cfg.
// It is a pure function of the flags cfg reports.
func TranscoderOptionsFor(cfg Configuration) TranscoderOptions {
	flags := []struct {
		enabled bool
		bit     TranscoderOptions
	}{
		{cfg.MathEnabled(), OptionMath},
		{cfg.DiagramsEnabled(), OptionDiagrams},
		{cfg.CodeHighlightEnabled(), OptionCodeHighlight},
		{cfg.HardWrapsEnabled(), OptionHardWraps},
		{cfg.RawHTMLEnabled(), OptionRawHTML},
		{cfg.HeadingIDsEnabled(), OptionHeadingIDs},
		{cfg.HighlightMarksEnabled(), OptionHighlightMarks},
		{cfg.FootnotesEnabled(), OptionFootnotes},
		{cfg.SanitizeEnabled(), OptionSanitize},
	}

	var opts TranscoderOptions
	for _, f := range flags {
		if f.enabled {
			opts |= f.bit
		}
	}
	return opts
}

// Compile-time interface check.
var _ Configuration = (*Settings)(nil)
