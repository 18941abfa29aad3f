package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// classFormatter emits CSS classes rather than inline styles so that both
// engines share one stylesheet produced by HighlightCSS.
var classFormatter = chromahtml.New(chromahtml.WithClasses(true))

// HighlightCSS returns the chroma stylesheet for the named style.
// Unknown names fall back to chroma's default style.
func HighlightCSS(styleName string) (string, error) {
	var buf strings.Builder
	if err := classFormatter.WriteCSS(&buf, styles.Get(styleName)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}

// highlightCode writes source highlighted for lang.
// Returns false without writing when no lexer matches lang.
func highlightCode(w io.Writer, source, lang, styleName string) bool {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return false
	}

	var buf strings.Builder
	if err := classFormatter.Format(&buf, styles.Get(styleName), iterator); err != nil {
		return false
	}
	_, _ = io.WriteString(w, buf.String())
	return true
}
