package outline2html

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-outline2html/internal/yamlutil"
)

var (
	metadataPattern  = regexp.MustCompile(`<!--\s*Metadata:\s*(.*?)\s*-->`)
	setextUnderlines = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
)

// outlineFrontMatter is the optional YAML block at the top of a Markdown outline.
type outlineFrontMatter struct {
	Title string   `yaml:"title"`
	Type  string   `yaml:"type"`
	Tags  []string `yaml:"tags"`
}

// headingSpan locates a top-level heading in the source.
type headingSpan struct {
	level int
	text  string // raw heading content, metadata comment included
	start int    // offset of the heading line
	end   int    // offset just after the heading (body start)
}

// ParseOutline reads an outline written by SaveOutline, or any Markdown file.
//
// A leading level-1 heading names the outline; every later top-level heading
// starts a note whose depth is its level minus two. Text between the title
// and the first note is the description. Metadata comments on heading lines
// set types, tags and timestamps; unknown metadata keys are ignored. YAML
// front matter (title, type, tags) is read when present and loses to the
// heading metadata. Only ErrFrontMatter is returned.
func (m *MarkdownOutlineRepresentation) ParseOutline(data []byte) (*Outline, error) {
	source := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	o := &Outline{}

	if front, body, ok := yamlutil.SplitFrontMatter(source); ok {
		if len(bytes.TrimSpace(front)) > 0 {
			var fm outlineFrontMatter
			if err := yamlutil.Unmarshal(front, &fm); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
			}
			o.Name = strings.TrimSpace(fm.Title)
			o.Type = m.ontology.FindOrCreateOutlineType(fm.Type)
			o.Tags = m.tags(fm.Tags)
		}
		source = body
	}

	headings := findHeadings(source)

	first := 0
	descriptionStart, descriptionEnd := 0, len(source)
	if len(headings) > 0 && headings[0].level == 1 {
		title := headings[0]
		name, meta := parseHeading(title.text)
		if name != "" {
			o.Name = name
		}
		m.applyOutlineMetadata(o, meta)
		first = 1

		preamble := sourceRange(source, 0, title.start)
		descriptionStart = title.end
		if len(headings) > 1 {
			descriptionEnd = headings[1].start
		}
		o.Description = joinBlocks(preamble, sourceRange(source, descriptionStart, descriptionEnd))
	} else {
		if len(headings) > 0 {
			descriptionEnd = headings[0].start
		}
		o.Description = sourceRange(source, descriptionStart, descriptionEnd)
	}

	for i := first; i < len(headings); i++ {
		h := headings[i]
		bodyEnd := len(source)
		if i+1 < len(headings) {
			bodyEnd = headings[i+1].start
		}

		name, meta := parseHeading(h.text)
		n := &Note{
			Name:  name,
			Depth: max(h.level-2, 0),
			Body:  sourceRange(source, h.end, bodyEnd),
		}
		m.applyNoteMetadata(n, meta)
		o.Notes = append(o.Notes, n)
	}

	return o, nil
}

func (m *MarkdownOutlineRepresentation) applyOutlineMetadata(o *Outline, meta map[string]string) {
	if v, ok := meta["type"]; ok {
		o.Type = m.ontology.FindOrCreateOutlineType(v)
	}
	if v, ok := meta["tags"]; ok {
		o.Tags = m.tags(strings.Split(v, ","))
	}
	o.Created = metadataTimestamp(meta["created"])
	o.Modified = metadataTimestamp(meta["modified"])
	o.Read = metadataTimestamp(meta["read"])
}

func (m *MarkdownOutlineRepresentation) applyNoteMetadata(n *Note, meta map[string]string) {
	n.Type = m.ontology.FindOrCreateNoteType(meta["type"])
	if v, ok := meta["tags"]; ok {
		n.Tags = m.tags(strings.Split(v, ","))
	}
	n.Created = metadataTimestamp(meta["created"])
	n.Modified = metadataTimestamp(meta["modified"])
}

func (m *MarkdownOutlineRepresentation) tags(names []string) []*Tag {
	var tags []*Tag
	for _, name := range names {
		if t := m.ontology.FindOrCreateTag(name); t != nil {
			tags = append(tags, t)
		}
	}
	return tags
}

// findHeadings returns the top-level, non-empty headings of source in order.
// Headings nested in block quotes or lists, and lines inside code blocks,
// are not headings here.
func findHeadings(source []byte) []headingSpan {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var spans []headingSpan
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}

		lines := h.Lines()
		parts := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
		}

		firstSeg := lines.At(0)
		lastSeg := lines.At(lines.Len() - 1)
		start := lineStart(source, firstSeg.Start)
		end := lineEnd(source, max(lastSeg.Stop-1, lastSeg.Start))

		// Setext headings end with their underline.
		if !isATXLine(source[start:]) && end < len(source) {
			underlineEnd := lineEnd(source, end)
			if setextUnderlines.Match(bytes.TrimRight(source[end:underlineEnd], "\n")) {
				end = underlineEnd
			}
		}

		spans = append(spans, headingSpan{
			level: h.Level,
			text:  strings.Join(parts, " "),
			start: start,
			end:   end,
		})
	}
	return spans
}

// parseHeading splits heading content into the name and its metadata fields.
func parseHeading(content string) (string, map[string]string) {
	meta := make(map[string]string)
	if match := metadataPattern.FindStringSubmatch(content); match != nil {
		for _, field := range strings.Split(match[1], ";") {
			key, value, ok := strings.Cut(field, ":")
			if !ok {
				continue
			}
			meta[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}
	name := strings.TrimSpace(metadataPattern.ReplaceAllString(content, ""))
	return name, meta
}

// metadataTimestamp parses a metadata timestamp; invalid values give the zero time.
func metadataTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(MetadataTimeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func lineStart(source []byte, pos int) int {
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

// lineEnd returns the offset just after the newline ending the line holding pos.
func lineEnd(source []byte, pos int) int {
	idx := bytes.IndexByte(source[pos:], '\n')
	if idx < 0 {
		return len(source)
	}
	return pos + idx + 1
}

func isATXLine(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " ")
	return len(trimmed) > 0 && trimmed[0] == '#'
}

// sourceRange returns source[from:to] without surrounding blank lines.
func sourceRange(source []byte, from, to int) string {
	if from >= to {
		return ""
	}
	return strings.Trim(string(source[from:to]), "\n")
}

func joinBlocks(blocks ...string) string {
	var kept []string
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}
