package pipeline

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/mermaid"
)

// GoldmarkTranscoder converts Markdown to HTML using goldmark (pure Go).
// The goldmark instance is rebuilt on every SetOptions call, which is the
// cost the option cache in the caller avoids.
type GoldmarkTranscoder struct {
	cfg  transcoderConfig
	opts Options
	md   goldmark.Markdown
}

// NewGoldmarkTranscoder creates a GoldmarkTranscoder with no options set.
func NewGoldmarkTranscoder(opts ...TranscoderOption) *GoldmarkTranscoder {
	t := &GoldmarkTranscoder{cfg: newTranscoderConfig(opts)}
	t.SetOptions(0)
	return t
}

// SetOptions rebuilds the goldmark instance for opts.
func (t *GoldmarkTranscoder) SetOptions(opts Options) {
	t.opts = opts
	t.md = goldmark.New(
		goldmark.WithExtensions(t.extensions()...),
		goldmark.WithParserOptions(t.parserOptions()...),
		goldmark.WithRendererOptions(t.rendererOptions()...),
	)
}

// Options returns the options the current instance was built with.
func (t *GoldmarkTranscoder) Options() Options {
	return t.opts
}

func (t *GoldmarkTranscoder) extensions() []goldmark.Extender {
	exts := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if t.opts.Has(OptionFootnotes) {
		exts = append(exts, extension.Footnote)
	}
	if t.opts.Has(OptionHighlightMarks) {
		exts = append(exts, &markExtension{})
	}
	if t.opts.Has(OptionMath) {
		exts = append(exts, &mathExtension{})
	}
	if t.opts.Has(OptionDiagrams) {
		// Client mode: the standalone header loads mermaid.js once.
		exts = append(exts, &mermaid.Extender{RenderMode: mermaid.RenderModeClient, NoScript: true})
	}
	if t.opts.Has(OptionCodeHighlight) {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(t.cfg.codeStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // stylesheet comes from HighlightCSS
			),
		))
	}
	return exts
}

func (t *GoldmarkTranscoder) parserOptions() []parser.Option {
	var opts []parser.Option
	if t.opts.Has(OptionHeadingIDs) {
		opts = append(opts, parser.WithAutoHeadingID())
	}
	return opts
}

func (t *GoldmarkTranscoder) rendererOptions() []renderer.Option {
	opts := []renderer.Option{html.WithXHTML()}
	if t.opts.Has(OptionHardWraps) {
		opts = append(opts, html.WithHardWraps())
	}
	if t.opts.Has(OptionRawHTML) {
		opts = append(opts, html.WithUnsafe())
	}
	return opts
}

// ToHTML converts Markdown content to an HTML fragment.
func (t *GoldmarkTranscoder) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := t.md.Convert([]byte(PreprocessMarkdown(markdown)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return buf.String(), nil
}
