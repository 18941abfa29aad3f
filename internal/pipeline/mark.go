package pipeline

import (
	"github.com/gomarkdown/markdown/ast"
	mdparser "github.com/gomarkdown/markdown/parser"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ==text== renders as <mark>. Delimiters follow the emphasis flanking
// rules: the opening run must not be followed by a space and the closing
// run must not be preceded by one, so "a == b" stays literal. Runs of
// three or more '=' never delimit.

// ---------------------------------------------------------------------------
// goldmark
// ---------------------------------------------------------------------------

type markNode struct {
	gast.BaseInline
}

var kindMark = gast.NewNodeKind("Mark")

func (n *markNode) Kind() gast.NodeKind { return kindMark }

func (n *markNode) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type markDelimiterProcessor struct{}

func (p *markDelimiterProcessor) IsDelimiter(b byte) bool {
	return b == '='
}

func (p *markDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *markDelimiterProcessor) OnMatch(consumes int) gast.Node {
	return &markNode{}
}

var defaultMarkDelimiterProcessor = &markDelimiterProcessor{}

type markParser struct{}

func (s *markParser) Trigger() []byte {
	return []byte{'='}
}

func (s *markParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultMarkDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '=' {
		return nil
	}
	if !node.CanOpen && !node.CanClose {
		return nil
	}

	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

type markHTMLRenderer struct{}

func (r *markHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindMark, r.renderMark)
}

func (r *markHTMLRenderer) renderMark(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("<mark>")
	} else {
		_, _ = w.WriteString("</mark>")
	}
	return gast.WalkContinue, nil
}

// markExtension adds ==mark== to goldmark.
type markExtension struct{}

func (e *markExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&markParser{}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&markHTMLRenderer{}, 500),
	))
}

// ---------------------------------------------------------------------------
// gomarkdown
// ---------------------------------------------------------------------------

// markSpan is the gomarkdown node for a highlighted span.
type markSpan struct {
	ast.Container
}

// parseMarkInline is the gomarkdown '=' handler. The span's content is
// parsed as inline Markdown, so emphasis and code inside a mark work.
func parseMarkInline(p *mdparser.Parser, data []byte, offset int) (int, ast.Node) {
	if offset > 0 && data[offset-1] == '=' {
		return 0, nil
	}
	rest := data[offset:]
	if len(rest) < 5 || rest[1] != '=' || rest[2] == '=' || isMarkSpace(rest[2]) {
		return 0, nil
	}

	for i := 3; i+1 < len(rest); i++ {
		if rest[i] != '=' || rest[i+1] != '=' {
			continue
		}
		if rest[i-1] == '=' || isMarkSpace(rest[i-1]) || (i+2 < len(rest) && rest[i+2] == '=') {
			continue
		}
		span := &markSpan{}
		p.Inline(span, rest[2:i])
		return i + 2, span
	}
	return 0, nil
}

func isMarkSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
