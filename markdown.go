package outline2html

import (
	"strings"
	"time"
)

// MarkdownRepresentation serializes outlines and notes to Markdown text,
// the input of the transcoder.
type MarkdownRepresentation interface {
	OutlineToMarkdown(o *Outline) string
	NoteToMarkdown(n *Note) string
}

// MetadataTimeLayout is the timestamp layout inside metadata comments.
// Timestamps are written in UTC.
const MetadataTimeLayout = "2006-01-02 15:04:05"

// Metadata comment delimiters, appended to heading lines by SaveOutline:
//
//	# Ideas <!-- Metadata: type: Grow; tags: work,idea; created: 2024-01-02 10:00:00; -->
const (
	metadataOpen  = "<!-- Metadata: "
	metadataClose = "-->"
)

// Highest heading level a note heading can use.
const maxHeadingLevel = 6

// MarkdownOutlineRepresentation is the default MarkdownRepresentation.
// Outlines become a level-1 heading followed by the description and the
// notes; a note at depth d becomes a heading of level d+2 (capped at 6).
type MarkdownOutlineRepresentation struct {
	ontology *Ontology
}

// NewMarkdownOutlineRepresentation creates a representation resolving types
// and tags against ontology. A nil ontology gets a fresh NewOntology().
func NewMarkdownOutlineRepresentation(ontology *Ontology) *MarkdownOutlineRepresentation {
	if ontology == nil {
		ontology = NewOntology()
	}
	return &MarkdownOutlineRepresentation{ontology: ontology}
}

// Ontology returns the ontology used when parsing.
func (m *MarkdownOutlineRepresentation) Ontology() *Ontology {
	return m.ontology
}

// OutlineToMarkdown renders o without metadata comments.
// Nil outline returns an empty string.
func (m *MarkdownOutlineRepresentation) OutlineToMarkdown(o *Outline) string {
	return m.outline(o, false)
}

// NoteToMarkdown renders n without metadata comments.
// Nil note returns an empty string.
func (m *MarkdownOutlineRepresentation) NoteToMarkdown(n *Note) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	m.note(n, &b, false)
	return b.String()
}

// SaveOutline renders o with metadata comments on every heading, the form
// read back by ParseOutline.
func (m *MarkdownOutlineRepresentation) SaveOutline(o *Outline) string {
	return m.outline(o, true)
}

func (m *MarkdownOutlineRepresentation) outline(o *Outline, withMetadata bool) string {
	if o == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(headingText(o.Name))
	if withMetadata {
		var typeName string
		if o.Type != nil {
			typeName = o.Type.Name
		}
		b.WriteString(metadataComment(typeName, o.Tags, []metadataTime{
			{"created", o.Created},
			{"modified", o.Modified},
			{"read", o.Read},
		}))
	}
	b.WriteString("\n\n")

	if desc := strings.Trim(o.Description, "\r\n"); strings.TrimSpace(desc) != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	for _, n := range o.Notes {
		if n == nil {
			continue
		}
		m.note(n, &b, withMetadata)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (m *MarkdownOutlineRepresentation) note(n *Note, b *strings.Builder, withMetadata bool) {
	var comment string
	if withMetadata {
		var typeName string
		if n.Type != nil {
			typeName = n.Type.Name
		}
		comment = metadataComment(typeName, n.Tags, []metadataTime{
			{"created", n.Created},
			{"modified", n.Modified},
		})
	}

	// A heading with neither name nor metadata would be empty and read back
	// as part of the previous section.
	if name := headingText(n.Name); name != "" || comment != "" {
		level := min(max(n.Depth, 0)+2, maxHeadingLevel)
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(comment)
		b.WriteString("\n\n")
	}

	if body := strings.Trim(n.Body, "\r\n"); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}
}

type metadataTime struct {
	key string
	t   time.Time
}

// metadataComment returns " <!-- Metadata: ...; -->", or "" when every field is empty.
func metadataComment(typeName string, tags []*Tag, times []metadataTime) string {
	var fields []string
	if typeName != "" {
		fields = append(fields, "type: "+metadataValue(typeName))
	}
	if names := tagNames(tags); len(names) > 0 {
		fields = append(fields, "tags: "+strings.Join(names, ","))
	}
	for _, mt := range times {
		if !mt.t.IsZero() {
			fields = append(fields, mt.key+": "+mt.t.UTC().Format(MetadataTimeLayout))
		}
	}
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(metadataOpen)
	for _, f := range fields {
		b.WriteString(f)
		b.WriteString("; ")
	}
	b.WriteString(metadataClose)
	return b.String()
}

// tagNames returns the non-empty tag names, made safe for the comment syntax.
func tagNames(tags []*Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == nil || t.Name == "" {
			continue
		}
		name := strings.ReplaceAll(metadataValue(t.Name), ",", " ")
		names = append(names, name)
	}
	return names
}

// metadataValue strips characters that would end a field or the comment.
func metadataValue(s string) string {
	s = strings.NewReplacer(";", " ", "-->", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

// headingText keeps a name on a single heading line.
func headingText(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s))
}

// Compile-time interface check.
var _ MarkdownRepresentation = (*MarkdownOutlineRepresentation)(nil)
