package pipeline

import (
	"html"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// mermaidLanguage is the fence info string rendered as a diagram.
const mermaidLanguage = "mermaid"

// GomarkdownTranscoder converts Markdown to HTML using gomarkdown.
// gomarkdown parsers and renderers are single-use, so SetOptions only
// records the flag sets and ToHTML builds fresh instances from them.
type GomarkdownTranscoder struct {
	cfg         transcoderConfig
	opts        Options
	extensions  parser.Extensions
	renderFlags mdhtml.Flags
}

// NewGomarkdownTranscoder creates a GomarkdownTranscoder with no options set.
func NewGomarkdownTranscoder(opts ...TranscoderOption) *GomarkdownTranscoder {
	t := &GomarkdownTranscoder{cfg: newTranscoderConfig(opts)}
	t.SetOptions(0)
	return t
}

// SetOptions recomputes the parser extensions and renderer flags for opts.
func (t *GomarkdownTranscoder) SetOptions(opts Options) {
	t.opts = opts

	ext := (parser.CommonExtensions | parser.NoEmptyLineBeforeBlock) &^ parser.MathJax
	if opts.Has(OptionMath) {
		ext |= parser.MathJax
	}
	if opts.Has(OptionHeadingIDs) {
		ext |= parser.AutoHeadingIDs
	}
	if opts.Has(OptionHardWraps) {
		ext |= parser.HardLineBreak
	}
	if opts.Has(OptionFootnotes) {
		ext |= parser.Footnotes
	}
	t.extensions = ext

	flags := mdhtml.CommonFlags | mdhtml.UseXHTML
	if !opts.Has(OptionRawHTML) {
		flags |= mdhtml.SkipHTML
	}
	t.renderFlags = flags
}

// Options returns the options last passed to SetOptions.
func (t *GomarkdownTranscoder) Options() Options {
	return t.opts
}

// ToHTML converts Markdown content to an HTML fragment.
func (t *GomarkdownTranscoder) ToHTML(source string) (string, error) {
	p := parser.NewWithExtensions(t.extensions)
	if t.opts.Has(OptionHighlightMarks) {
		p.RegisterInline('=', parseMarkInline)
	}
	if t.opts.Has(OptionMath) {
		p.RegisterInline('$', parseMathInline)
	}
	doc := p.Parse([]byte(PreprocessMarkdown(source)))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags:          t.renderFlags,
		RenderNodeHook: t.renderHook,
	})

	return string(markdown.Render(doc, renderer)), nil
}

// renderHook renders the nodes gomarkdown has no markup for (marks and
// display-capable math) and takes over fenced code blocks for diagrams and
// highlighting.
func (t *GomarkdownTranscoder) renderHook(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *markSpan:
		if entering {
			_, _ = io.WriteString(w, "<mark>")
		} else {
			_, _ = io.WriteString(w, "</mark>")
		}
		return ast.GoToNext, true
	case *mathSpan:
		if entering {
			_, _ = io.WriteString(w, renderMath(string(n.Literal), n.display))
		}
		return ast.GoToNext, true
	case *ast.MathBlock:
		if entering {
			_, _ = io.WriteString(w, "<p>"+renderMath(strings.TrimSpace(string(n.Literal)), true)+"</p>\n")
		}
		return ast.GoToNext, true
	case *ast.CodeBlock:
		if entering {
			return t.renderCodeBlock(w, n)
		}
	}
	return ast.GoToNext, false
}

func (t *GomarkdownTranscoder) renderCodeBlock(w io.Writer, block *ast.CodeBlock) (ast.WalkStatus, bool) {
	lang := strings.ToLower(strings.TrimSpace(string(block.Info)))
	if lang == "" {
		return ast.GoToNext, false
	}

	if lang == mermaidLanguage && t.opts.Has(OptionDiagrams) {
		_, _ = io.WriteString(w, `<pre class="mermaid">`)
		_, _ = io.WriteString(w, html.EscapeString(string(block.Literal)))
		_, _ = io.WriteString(w, "</pre>\n")
		return ast.GoToNext, true
	}

	if t.opts.Has(OptionCodeHighlight) && highlightCode(w, string(block.Literal), lang, t.cfg.codeStyle) {
		return ast.GoToNext, true
	}

	return ast.GoToNext, false
}
