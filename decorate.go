package outline2html

import (
	"html"
	"net/url"
	"strings"
	"time"
)

// Internal navigation targets produced when autolinking is on.
const (
	NavTypeScheme = "nav://type/"
	NavTagScheme  = "nav://tag/"
)

// FgBgTextColorStyle appends style="color: X; background-color: Y;" with the
// current theme colors. Used by standalone rendering only.
func (r *Representation) FgBgTextColorStyle(b *strings.Builder) {
	b.WriteString(`style="color: `)
	b.WriteString(html.EscapeString(r.colors.TextColor()))
	b.WriteString(`; background-color: `)
	b.WriteString(html.EscapeString(r.colors.BackgroundColor()))
	b.WriteString(`;"`)
}

// OutlineTypeToHTML appends a type badge. Nil type appends nothing.
func (r *Representation) OutlineTypeToHTML(t *OutlineType, b *strings.Builder) {
	if t == nil {
		return
	}
	typeBadge(t.Name, t.Color, false, b)
}

// NoteTypeToHTML appends a type badge. Nil type appends nothing.
func (r *Representation) NoteTypeToHTML(t *NoteType, b *strings.Builder) {
	if t == nil {
		return
	}
	typeBadge(t.Name, t.Color, false, b)
}

// TagsToHTML appends the tag labels in order. An empty or all-nil slice
// appends nothing.
func (r *Representation) TagsToHTML(tags []*Tag, b *strings.Builder) {
	tagsHTML(tags, false, b)
}

// OutlineMetadataToHTML appends the metadata block of o: type, tags and
// non-zero timestamps. Nil outline or empty metadata appends nothing.
func (r *Representation) OutlineMetadataToHTML(o *Outline, b *strings.Builder) {
	r.outlineMetadata(o, false, b)
}

func (r *Representation) outlineMetadata(o *Outline, autolinking bool, b *strings.Builder) {
	if o == nil {
		return
	}

	var inner strings.Builder
	if o.Type != nil {
		typeBadge(o.Type.Name, o.Type.Color, autolinking, &inner)
	}
	tagsHTML(o.Tags, autolinking, &inner)
	r.timestamp("created", o.Created, &inner)
	r.timestamp("modified", o.Modified, &inner)
	r.timestamp("read", o.Read, &inner)

	metadataBlock(inner.String(), b)
}

func (r *Representation) noteMetadata(n *Note, autolinking bool, b *strings.Builder) {
	var inner strings.Builder
	if n.Type != nil {
		typeBadge(n.Type.Name, n.Type.Color, autolinking, &inner)
	}
	tagsHTML(n.Tags, autolinking, &inner)

	metadataBlock(inner.String(), b)
}

func (r *Representation) timestamp(label string, t time.Time, b *strings.Builder) {
	formatted := r.dates.Format(t)
	if formatted == "" {
		return
	}
	b.WriteString(`<span class="mf-timestamp">`)
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(html.EscapeString(formatted))
	b.WriteString(`</span>`)
}

func metadataBlock(inner string, b *strings.Builder) {
	if inner == "" {
		return
	}
	b.WriteString(`<div class="mf-metadata">`)
	b.WriteString(inner)
	b.WriteString("</div>\n")
}

func typeBadge(name, color string, autolinking bool, b *strings.Builder) {
	if name == "" {
		return
	}
	b.WriteString(`<span class="mf-type"`)
	if color != "" {
		b.WriteString(` style="background-color: `)
		b.WriteString(html.EscapeString(color))
		b.WriteString(`;"`)
	}
	b.WriteString(">")
	label(name, NavTypeScheme, autolinking, b)
	b.WriteString("</span>")
}

func tagsHTML(tags []*Tag, autolinking bool, b *strings.Builder) {
	written := false
	for _, t := range tags {
		if t == nil || t.Name == "" {
			continue
		}
		if written {
			b.WriteString(" ")
		} else {
			b.WriteString(`<span class="mf-tags">`)
			written = true
		}
		b.WriteString(`<span class="mf-tag"`)
		if t.Color != "" {
			b.WriteString(` style="background-color: `)
			b.WriteString(html.EscapeString(t.Color))
			b.WriteString(`;"`)
		}
		b.WriteString(">")
		label(t.Name, NavTagScheme, autolinking, b)
		b.WriteString("</span>")
	}
	if written {
		b.WriteString("</span>")
	}
}

// label writes name, linked to scheme+name when autolinking.
func label(name, scheme string, autolinking bool, b *strings.Builder) {
	escaped := html.EscapeString(name)
	if !autolinking {
		b.WriteString(escaped)
		return
	}
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(scheme + url.PathEscape(name)))
	b.WriteString(`">`)
	b.WriteString(escaped)
	b.WriteString("</a>")
}
