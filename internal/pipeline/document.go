package pipeline

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// ErrDocumentRender indicates a standalone header or footer failed to render.
var ErrDocumentRender = errors.New("document template rendering failed")

// Script locations loaded by standalone documents.
const (
	DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"
	DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"
)

// DocumentData fills the standalone header and footer templates.
type DocumentData struct {
	Title      string
	CSS        template.CSS      // stylesheet, trusted (comes from assets or the host)
	BodyStyle  template.HTMLAttr // style="color: ...; background-color: ...;"
	Math       bool
	Diagrams   bool
	MathJaxURL string
	MermaidURL string
}

// DocumentWrapper renders the header and footer that turn an HTML fragment
// into a standalone document.
type DocumentWrapper struct {
	header *template.Template
	footer *template.Template
}

// NewDocumentWrapper parses header and footer template content.
// Returns error if either template cannot be parsed.
func NewDocumentWrapper(headerTmpl, footerTmpl string) (*DocumentWrapper, error) {
	header, err := template.New("header").Parse(headerTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing header template: %w", err)
	}
	footer, err := template.New("footer").Parse(footerTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing footer template: %w", err)
	}
	return &DocumentWrapper{header: header, footer: footer}, nil
}

// Header writes the document start, up to and including the opening body tag.
func (d *DocumentWrapper) Header(w io.Writer, data *DocumentData) error {
	return d.execute(d.header, w, data)
}

// Footer writes the document end.
func (d *DocumentWrapper) Footer(w io.Writer, data *DocumentData) error {
	return d.execute(d.footer, w, data)
}

// Wrap returns fragment embedded between header and footer.
func (d *DocumentWrapper) Wrap(fragment string, data *DocumentData) (string, error) {
	var buf strings.Builder
	buf.Grow(len(fragment) + 1024)
	if err := d.Header(&buf, data); err != nil {
		return "", err
	}
	buf.WriteString(fragment)
	if err := d.Footer(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (d *DocumentWrapper) execute(tmpl *template.Template, w io.Writer, data *DocumentData) error {
	if data == nil {
		data = &DocumentData{}
	}
	if data.MathJaxURL == "" {
		data.MathJaxURL = DefaultMathJaxURL
	}
	if data.MermaidURL == "" {
		data.MermaidURL = DefaultMermaidURL
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return nil
}
