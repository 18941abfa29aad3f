package pipeline

import (
	"bytes"
	"html"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	mdparser "github.com/gomarkdown/markdown/parser"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Math is recognized by the engines' own parsers: $...$ is inline, $$...$$
// on one line is a display span, and a block opened and closed by lines
// holding only $$ is a display paragraph. Code and link destinations are
// never parsed as inline text, so their dollars stay literal.

// mathDelimiter is the line that opens and closes a display block.
var mathDelimiter = []byte("$$")

// renderMath produces the markup MathJax scans for. The class names match
// what gomarkdown emits for its native MathJax extension.
func renderMath(tex string, display bool) string {
	tex = html.EscapeString(tex)
	if display {
		return `<span class="math display">\[` + tex + `\]</span>`
	}
	return `<span class="math inline">\(` + tex + `\)</span>`
}

// scanInlineMath reads a math span at the start of line. It returns the
// TeX, whether the span used $$ delimiters, and the bytes consumed.
func scanInlineMath(line []byte) (string, bool, int) {
	if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	width := 1
	if len(line) > 1 && line[1] == '$' {
		width = 2
	}
	display := width == 2

	end, ok := closingDollar(string(line), width, display)
	if !ok {
		return "", false, 0
	}
	tex := string(line[width:end])
	if display {
		tex = strings.TrimSpace(tex)
	}
	return tex, display, end + width
}

// closingDollar finds the closing delimiter for a segment starting at start.
// Inline math must not start or end with a space and must not be directly
// followed by a digit, which keeps prices like "$5 and $6" literal.
func closingDollar(line string, start int, display bool) (int, bool) {
	if start >= len(line) {
		return 0, false
	}
	if !display && (line[start] == ' ' || line[start] == '$') {
		return 0, false
	}
	for j := start; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case '$':
			if display {
				if strings.HasPrefix(line[j:], "$$") && j > start {
					return j, true
				}
				continue
			}
			if line[j-1] == ' ' {
				continue
			}
			if j+1 < len(line) && line[j+1] >= '0' && line[j+1] <= '9' {
				continue
			}
			return j, true
		}
	}
	return 0, false
}

func isMathDelimiterLine(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(util.TrimLeftSpace(line)), mathDelimiter)
}

// ---------------------------------------------------------------------------
// goldmark
// ---------------------------------------------------------------------------

type mathInline struct {
	gast.BaseInline
	tex     string
	display bool
}

var kindMathInline = gast.NewNodeKind("MathInline")

func (n *mathInline) Kind() gast.NodeKind { return kindMathInline }

func (n *mathInline) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, map[string]string{"TeX": n.tex}, nil)
}

type mathBlock struct {
	gast.BaseBlock
}

var kindMathBlock = gast.NewNodeKind("MathBlock")

func (n *mathBlock) Kind() gast.NodeKind { return kindMathBlock }

// IsRaw keeps the block's lines out of inline parsing.
func (n *mathBlock) IsRaw() bool { return true }

func (n *mathBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathInlineParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	line, _ := block.PeekLine()
	tex, display, n := scanInlineMath(line)
	if n == 0 {
		return nil
	}
	block.Advance(n)
	return &mathInline{tex: tex, display: display}
}

type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent gast.Node, reader text.Reader, pc parser.Context) (gast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pc.BlockIndent() >= 4 || !isMathDelimiterLine(line[pos:]) {
		return nil, parser.NoChildren
	}
	return &mathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node gast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()

	if w, pos := util.IndentWidth(line, reader.LineOffset()); w < 4 && isMathDelimiterLine(line[pos:]) {
		newline := 0
		if len(line) > 0 && line[len(line)-1] == '\n' {
			newline = 1
		}
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		return parser.Close
	}

	node.Lines().Append(segment)
	reader.Advance(max(segment.Stop-segment.Start-1, 0))
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node gast.Node, reader text.Reader, pc parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool { return true }

func (b *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindMathInline, r.renderInline)
	reg.Register(kindMathBlock, r.renderBlock)
}

func (r *mathHTMLRenderer) renderInline(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		m := n.(*mathInline)
		_, _ = w.WriteString(renderMath(m.tex, m.display))
	}
	return gast.WalkSkipChildren, nil
}

func (r *mathHTMLRenderer) renderBlock(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if !entering {
		return gast.WalkSkipChildren, nil
	}
	var tex bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		tex.Write(seg.Value(source))
	}
	_, _ = w.WriteString("<p>" + renderMath(strings.TrimSpace(tex.String()), true) + "</p>\n")
	return gast.WalkSkipChildren, nil
}

// mathExtension adds $...$ and $$...$$ to goldmark.
type mathExtension struct{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 750)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 500)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&mathHTMLRenderer{}, 500),
	))
}

// ---------------------------------------------------------------------------
// gomarkdown
// ---------------------------------------------------------------------------

// mathSpan is an inline math node; Literal holds the TeX. gomarkdown's own
// ast.Math has no display form, so same-line $$x$$ would render with stray
// dollars around an inline span.
type mathSpan struct {
	ast.Leaf
	display bool
}

// parseMathInline replaces gomarkdown's '$' handler so both engines apply
// the same delimiter rules. Display blocks stay with gomarkdown's MathJax
// block parser.
func parseMathInline(p *mdparser.Parser, data []byte, offset int) (int, ast.Node) {
	tex, display, n := scanInlineMath(data[offset:])
	if n == 0 {
		return 0, nil
	}
	span := &mathSpan{display: display}
	span.Literal = []byte(tex)
	return n, span
}
