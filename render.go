package outline2html

import (
	"html"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-outline2html/internal/pipeline"
)

// MarkdownToHTML transcodes markdown to an HTML fragment under the current
// options. When basePath is non-empty, relative image and link targets are
// resolved against it. When standalone, the fragment is wrapped in a full
// document styled with the theme colors.
func (r *Representation) MarkdownToHTML(markdown, basePath string, standalone bool) string {
	opts := r.refreshOptions()
	fragment := r.fragment(markdown, basePath, opts)
	if !standalone {
		return fragment
	}
	return r.wrap(fragment, r.title, opts)
}

// OutlineToHTML renders o through its Markdown form. Relative paths resolve
// against the directory of o.Key. Standalone output carries the outline
// metadata before the body. Nil outline returns "".
func (r *Representation) OutlineToHTML(o *Outline, standalone bool) string {
	if o == nil {
		return ""
	}

	opts := r.refreshOptions()
	fragment := r.fragment(r.markdown.OutlineToMarkdown(o), outlineBasePath(o), opts)
	if !standalone {
		return fragment
	}

	var b strings.Builder
	b.Grow(len(fragment) + 256)
	r.OutlineMetadataToHTML(o, &b)
	b.WriteString(fragment)
	return r.wrap(b.String(), o.Name, opts)
}

// OutlineHeaderToHTML renders the title and metadata of o without notes.
// With autolinking, type and tags link to nav:// targets.
// Nil outline returns "".
func (r *Representation) OutlineHeaderToHTML(o *Outline, standalone, autolinking bool) string {
	if o == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<h1 class="mf-title">`)
	b.WriteString(html.EscapeString(o.Name))
	b.WriteString("</h1>\n")
	r.outlineMetadata(o, autolinking, &b)

	if !standalone {
		return b.String()
	}
	return r.wrap(b.String(), o.Name, r.refreshOptions())
}

// NoteToHTML renders the metadata and Markdown of a single note.
// Notes are never standalone. Nil note returns "".
func (r *Representation) NoteToHTML(n *Note, autolinking bool) string {
	if n == nil {
		return ""
	}

	opts := r.refreshOptions()
	fragment := r.fragment(r.markdown.NoteToMarkdown(n), "", opts)

	var b strings.Builder
	b.Grow(len(fragment) + 128)
	r.noteMetadata(n, autolinking, &b)
	b.WriteString(fragment)
	return b.String()
}

// fragment runs the interceptor, transcoder, sanitizer and path rewrite.
func (r *Representation) fragment(markdown, basePath string, opts TranscoderOptions) string {
	if r.interceptor != nil {
		markdown = r.interceptor(markdown)
	}

	out, ok := r.cachedFragment(markdown, opts)
	if !ok {
		var err error
		out, err = r.transcoder.ToHTML(markdown)
		if err != nil {
			r.logger.Warn("transcoding failed, rendering as preformatted text", zap.Error(err))
			out = "<pre>" + html.EscapeString(markdown) + "</pre>\n"
		} else {
			if opts.Has(OptionSanitize) {
				out = r.sanitizer.Sanitize(out)
			}
			if r.cache != nil {
				r.cache.Put(opts, markdown, out)
			}
		}
	}

	if basePath == "" {
		return out
	}
	rewritten, err := pipeline.RewriteRelativePaths(out, basePath)
	if err != nil {
		r.logger.Warn("relative path rewrite failed", zap.String("basePath", basePath), zap.Error(err))
		return out
	}
	return rewritten
}

func (r *Representation) cachedFragment(markdown string, opts TranscoderOptions) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	out, ok := r.cache.Get(opts, markdown)
	if ok {
		r.logger.Debug("fragment cache hit", zap.Int("bytes", len(markdown)))
	}
	return out, ok
}

// wrap embeds content in the standalone header and footer.
func (r *Representation) wrap(content, title string, opts TranscoderOptions) string {
	data := r.documentData(title, opts)
	out, err := r.document.Wrap(content, data)
	if err == nil {
		return out
	}

	r.logger.Warn("document template failed, using minimal document", zap.Error(err))
	out, err = fallbackDocument().Wrap(content, r.documentData(title, opts))
	if err != nil {
		// Constant templates over escaped data; unreachable in practice.
		return content
	}
	return out
}

func outlineBasePath(o *Outline) string {
	if o.Key == "" {
		return ""
	}
	return filepath.Dir(o.Key)
}
