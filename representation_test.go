package outline2html

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingTranscoder records SetOptions and ToHTML calls.
// Output echoes the options so option changes are observable.
type countingTranscoder struct {
	setCalls   int
	toCalls    int
	opts       TranscoderOptions
	err        error
	lastSource string
}

func (c *countingTranscoder) SetOptions(opts TranscoderOptions) {
	c.setCalls++
	c.opts = opts
}

func (c *countingTranscoder) ToHTML(markdown string) (string, error) {
	c.toCalls++
	c.lastSource = markdown
	if c.err != nil {
		return "", c.err
	}
	return "<p>[" + c.opts.String() + "] " + markdown + "</p>", nil
}

// fakeTheme is a ThemeSource whose colors tests change between calls.
type fakeTheme struct {
	text, background string
}

func (f *fakeTheme) TextColor() string       { return f.text }
func (f *fakeTheme) BackgroundColor() string { return f.background }

func analysisOutline(ontology *Ontology) *Outline {
	return &Outline{
		Name: "Quarterly review",
		Type: ontology.FindOrCreateOutlineType("Analysis"),
		Tags: []*Tag{
			ontology.FindOrCreateTag("work"),
			ontology.FindOrCreateTag("idea"),
		},
		Notes: []*Note{
			{Body: "# Hi\nworld"},
		},
	}
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNew_NilArguments(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)

	if r.MarkdownRepresentation() == nil {
		t.Fatal("MarkdownRepresentation() = nil")
	}
	if r.MarkdownRepresentation().Ontology() == nil {
		t.Error("Ontology() = nil, want a fresh ontology")
	}
	if got := r.TranscoderOptions(); got != OptionsUnset {
		t.Errorf("TranscoderOptions() before render = %v, want OptionsUnset", got)
	}

	out := r.MarkdownToHTML("hello", "", false)
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("MarkdownToHTML() = %q, want paragraph", out)
	}
}

func TestNewWithColors_NilColorsFallsBack(t *testing.T) {
	t.Parallel()

	r := NewWithColors(nil, nil, nil, nil)

	var b strings.Builder
	r.FgBgTextColorStyle(&b)
	want := `style="color: #000000; background-color: #FFFFFF;"`
	if b.String() != want {
		t.Errorf("FgBgTextColorStyle() = %q, want %q", b.String(), want)
	}
}

func TestNew_InvalidOptionsAreLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	r := New(nil, nil, nil,
		WithLogger(zap.New(core)),
		WithDateFormat("[unclosed"),
		WithDocumentTemplates(NewTemplateSet("broken", "{{.Title", "")),
	)

	if r == nil {
		t.Fatal("New() = nil")
	}
	if got := logs.FilterMessage("date format rejected, using default").Len(); got != 1 {
		t.Errorf("date format warnings = %d, want 1", got)
	}
	if got := logs.FilterMessage("document templates rejected, using defaults").Len(); got != 1 {
		t.Errorf("template warnings = %d, want 1", got)
	}

	out := r.MarkdownToHTML("x", "", true)
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Errorf("standalone output lacks default header: %q", out)
	}
}

// ---------------------------------------------------------------------------
// Option caching
// ---------------------------------------------------------------------------

func TestRepresentation_OptionCache(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	tc := &countingTranscoder{}
	r := New(settings, nil, nil, WithTranscoder(tc))

	for i := 0; i < 5; i++ {
		r.MarkdownToHTML("text", "", false)
	}
	if tc.setCalls != 1 {
		t.Fatalf("SetOptions calls after 5 renders = %d, want 1", tc.setCalls)
	}
	if got := r.TranscoderOptions(); got != TranscoderOptionsFor(settings) {
		t.Errorf("TranscoderOptions() = %v, want %v", got, TranscoderOptionsFor(settings))
	}

	settings.Math = true
	r.MarkdownToHTML("text", "", false)
	if tc.setCalls != 2 {
		t.Errorf("SetOptions calls after flag flip = %d, want 2", tc.setCalls)
	}
	if !tc.opts.Has(OptionMath) {
		t.Error("transcoder did not receive OptionMath")
	}

	r.MarkdownToHTML("text", "", false)
	if tc.setCalls != 2 {
		t.Errorf("SetOptions calls after unchanged render = %d, want 2", tc.setCalls)
	}
}

func TestRepresentation_OptionCacheMatchesFreshComputation(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	cached := New(settings, nil, nil)

	inputs := []string{"# A\n\ntext", "`code`", "==mark== and $x$", "# A\n\ntext"}
	for _, in := range inputs {
		fresh := New(settings, nil, nil)
		if got, want := cached.MarkdownToHTML(in, "", false), fresh.MarkdownToHTML(in, "", false); got != want {
			t.Errorf("cached render of %q = %q, fresh = %q", in, got, want)
		}
	}
}

func TestRepresentation_MathToggleChangesOutput(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	r := New(settings, nil, nil)

	before := r.MarkdownToHTML("Euler: $e^{i\\pi}$", "", false)
	optsBefore := r.TranscoderOptions()

	settings.Math = true
	after := r.MarkdownToHTML("Euler: $e^{i\\pi}$", "", false)

	if r.TranscoderOptions() == optsBefore {
		t.Error("option bitmask unchanged after enabling math")
	}
	if strings.Contains(before, `class="math inline"`) {
		t.Errorf("math markup present with math off: %q", before)
	}
	if !strings.Contains(after, `class="math inline"`) {
		t.Errorf("math markup missing with math on: %q", after)
	}
}

func TestRepresentation_OptionChangeIsLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	r := New(nil, nil, nil, WithTranscoder(&countingTranscoder{}), WithLogger(zap.New(core)))

	r.MarkdownToHTML("a", "", false)
	r.MarkdownToHTML("b", "", false)

	if got := logs.FilterMessage("transcoder options changed").Len(); got != 1 {
		t.Errorf("option change logs = %d, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// MarkdownToHTML
// ---------------------------------------------------------------------------

func TestRepresentation_MarkdownToHTML_Idempotent(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)
	md := "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfunc main() {}\n```\n"

	first := r.MarkdownToHTML(md, "", false)
	second := r.MarkdownToHTML(md, "", false)
	if first != second {
		t.Errorf("outputs differ:\n%s\n---\n%s", first, second)
	}
}

func TestRepresentation_MarkdownToHTML_Standalone(t *testing.T) {
	t.Parallel()

	theme := &fakeTheme{text: "#112233", background: "#FAFAFA"}
	r := NewWithColors(nil, nil, NewLiveColors(theme), nil, WithTitle("Notes"))

	fragment := r.MarkdownToHTML("hello", "", false)
	doc := r.MarkdownToHTML("hello", "", true)

	for _, marker := range []string{"<!DOCTYPE html>", "<title>Notes</title>", "</body>", "</html>"} {
		if strings.Contains(fragment, marker) {
			t.Errorf("fragment contains %q", marker)
		}
		if !strings.Contains(doc, marker) {
			t.Errorf("standalone output lacks %q", marker)
		}
	}
	if !strings.Contains(doc, "#112233") || !strings.Contains(doc, "#FAFAFA") {
		t.Errorf("standalone output lacks theme colors: %q", doc)
	}
	if strings.Contains(fragment, "#112233") {
		t.Errorf("fragment carries theme colors: %q", fragment)
	}

	theme.text = "#445566"
	if doc := r.MarkdownToHTML("hello", "", true); !strings.Contains(doc, "#445566") {
		t.Error("live theme change not observed")
	}
}

func TestRepresentation_MarkdownToHTML_StandaloneScripts(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	r := New(settings, nil, nil)

	doc := r.MarkdownToHTML("x", "", true)
	if strings.Contains(doc, "MathJax-script") || strings.Contains(doc, "mermaid.initialize") {
		t.Error("scripts present with math and diagrams off")
	}
	if !strings.Contains(doc, ".chroma") {
		t.Error("highlight stylesheet missing with code highlighting on")
	}

	settings.Math = true
	settings.Diagrams = true
	doc = r.MarkdownToHTML("x", "", true)
	if !strings.Contains(doc, "MathJax") {
		t.Error("MathJax script missing with math on")
	}
	if !strings.Contains(doc, "mermaid.initialize") {
		t.Error("mermaid script missing with diagrams on")
	}
}

func TestRepresentation_MarkdownToHTML_BasePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := New(nil, nil, nil)

	out := r.MarkdownToHTML("![chart](images/chart.png)", dir, false)
	want := "file://" + filepath.ToSlash(filepath.Join(dir, "images", "chart.png"))
	if !strings.Contains(out, want) {
		t.Errorf("MarkdownToHTML() = %q, want rewritten src %q", out, want)
	}

	out = r.MarkdownToHTML("![chart](images/chart.png)", "", false)
	if !strings.Contains(out, `src="images/chart.png"`) {
		t.Errorf("MarkdownToHTML() without base path = %q, want relative src", out)
	}
}

func TestRepresentation_Interceptor(t *testing.T) {
	t.Parallel()

	tc := &countingTranscoder{}
	upper := Interceptor(strings.ToUpper)
	r := New(nil, nil, upper, WithTranscoder(tc))

	r.MarkdownToHTML("shout", "", false)
	if tc.lastSource != "SHOUT" {
		t.Errorf("transcoder received %q, want %q", tc.lastSource, "SHOUT")
	}
}

func TestRepresentation_Sanitize(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	settings.RawHTML = true
	r := New(settings, nil, nil)

	md := "text\n\n<script>alert(1)</script>\n"
	if out := r.MarkdownToHTML(md, "", false); !strings.Contains(out, "<script>") {
		t.Fatalf("raw HTML not passed through: %q", out)
	}

	settings.Sanitize = true
	if out := r.MarkdownToHTML(md, "", false); strings.Contains(out, "<script>") {
		t.Errorf("sanitized output contains script: %q", out)
	}
}

func TestRepresentation_TranscoderFailureDegrades(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	tc := &countingTranscoder{err: errors.New("boom")}
	r := New(nil, nil, nil, WithTranscoder(tc), WithLogger(zap.New(core)), WithFragmentCache(8))

	out := r.MarkdownToHTML("a < b", "", false)
	if out != "<pre>a &lt; b</pre>\n" {
		t.Errorf("MarkdownToHTML() = %q, want escaped <pre>", out)
	}
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}

	r.MarkdownToHTML("a < b", "", false)
	if tc.toCalls != 2 {
		t.Errorf("ToHTML calls = %d, want 2 (failures are not cached)", tc.toCalls)
	}
}

func TestRepresentation_FragmentCache(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings()
	tc := &countingTranscoder{}
	r := New(settings, nil, nil, WithTranscoder(tc), WithFragmentCache(8))

	first := r.MarkdownToHTML("cached", "", false)
	second := r.MarkdownToHTML("cached", "", false)
	if first != second {
		t.Errorf("cached output differs: %q vs %q", first, second)
	}
	if tc.toCalls != 1 {
		t.Errorf("ToHTML calls = %d, want 1", tc.toCalls)
	}

	settings.HardWraps = true
	r.MarkdownToHTML("cached", "", false)
	if tc.toCalls != 2 {
		t.Errorf("ToHTML calls after option change = %d, want 2", tc.toCalls)
	}
}

// ---------------------------------------------------------------------------
// Outline and note rendering
// ---------------------------------------------------------------------------

func TestRepresentation_OutlineToHTML_EndToEnd(t *testing.T) {
	t.Parallel()

	ontology := NewOntology()
	r := New(nil, ontology, nil)

	out := r.OutlineToHTML(analysisOutline(ontology), true)

	for _, want := range []string{
		"Analysis",
		">work<",
		">idea<",
		">Hi</h1>",
		"world",
		"#000000",
		"<title>Quarterly review</title>",
		`class="mf-metadata"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("OutlineToHTML() lacks %q", want)
		}
	}
	if !strings.Contains(out, `style="color: #000000;`) {
		t.Error("text color not in a style attribute")
	}
}

func TestRepresentation_OutlineToHTML_Fragment(t *testing.T) {
	t.Parallel()

	ontology := NewOntology()
	r := New(nil, ontology, nil)

	out := r.OutlineToHTML(analysisOutline(ontology), false)

	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Error("fragment contains document header")
	}
	if strings.Contains(out, `class="mf-metadata"`) {
		t.Error("fragment contains metadata block")
	}
	if !strings.Contains(out, ">Quarterly review</h1>") || !strings.Contains(out, ">Hi</h1>") {
		t.Errorf("fragment lacks headings: %q", out)
	}
}

func TestRepresentation_OutlineToHTML_KeyBasePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := New(nil, nil, nil)
	o := &Outline{
		Key:   filepath.Join(dir, "plan.md"),
		Name:  "Plan",
		Notes: []*Note{{Name: "Diagram", Body: "![d](img/d.png)"}},
	}

	out := r.OutlineToHTML(o, false)
	want := "file://" + filepath.ToSlash(filepath.Join(dir, "img", "d.png"))
	if !strings.Contains(out, want) {
		t.Errorf("OutlineToHTML() = %q, want %q", out, want)
	}
}

func TestRepresentation_OutlineHeaderToHTML(t *testing.T) {
	t.Parallel()

	ontology := NewOntology()
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	o := analysisOutline(ontology)
	o.Name = "R&D <plan>"
	o.Created = created

	tests := []struct {
		name        string
		standalone  bool
		autolinking bool
		want        []string
		notWant     []string
	}{
		{
			name: "plain",
			want: []string{
				`<h1 class="mf-title">R&amp;D &lt;plan&gt;</h1>`,
				`<span class="mf-tag">work</span>`,
				"created: 2024-03-01 09:30",
			},
			notWant: []string{"nav://", "<!DOCTYPE html>", ">Hi</h1>"},
		},
		{
			name:        "autolinking",
			autolinking: true,
			want: []string{
				`<a href="nav://type/Analysis">Analysis</a>`,
				`<a href="nav://tag/work">work</a>`,
				`<a href="nav://tag/idea">idea</a>`,
			},
		},
		{
			name:       "standalone",
			standalone: true,
			want:       []string{"<!DOCTYPE html>", "<title>R&amp;D &lt;plan&gt;</title>", "#FFFFFF"},
			notWant:    []string{">Hi</h1>"},
		},
	}

	r := New(nil, ontology, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.OutlineHeaderToHTML(o, tt.standalone, tt.autolinking)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output lacks %q:\n%s", w, out)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out, nw) {
					t.Errorf("output contains %q", nw)
				}
			}
		})
	}
}

func TestRepresentation_NoteToHTML(t *testing.T) {
	t.Parallel()

	ontology := NewOntology()
	r := New(nil, ontology, nil)
	n := &Note{
		Name: "Next steps",
		Type: ontology.FindOrCreateNoteType("Action"),
		Tags: []*Tag{ontology.FindOrCreateTag("todo")},
		Body: "- ship it",
	}

	out := r.NoteToHTML(n, true)

	for _, want := range []string{
		`<a href="nav://type/Action">Action</a>`,
		`<a href="nav://tag/todo">todo</a>`,
		">Next steps</h2>",
		"<li>ship it</li>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("NoteToHTML() lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<!DOCTYPE html>") || strings.Contains(out, "background-color: #FFFFFF") {
		t.Error("note output is styled as a standalone document")
	}

	plain := r.NoteToHTML(&Note{Body: "just text"}, false)
	if strings.Contains(plain, "mf-metadata") {
		t.Errorf("note without type or tags has metadata: %q", plain)
	}
}

func TestRepresentation_NilEntities(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)

	if got := r.OutlineToHTML(nil, true); got != "" {
		t.Errorf("OutlineToHTML(nil) = %q", got)
	}
	if got := r.OutlineHeaderToHTML(nil, true, true); got != "" {
		t.Errorf("OutlineHeaderToHTML(nil) = %q", got)
	}
	if got := r.NoteToHTML(nil, true); got != "" {
		t.Errorf("NoteToHTML(nil) = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Decoration
// ---------------------------------------------------------------------------

func TestRepresentation_TypeToHTML_Nil(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)
	var b strings.Builder
	b.WriteString("keep")

	r.OutlineTypeToHTML(nil, &b)
	r.NoteTypeToHTML(nil, &b)
	r.OutlineTypeToHTML(&OutlineType{}, &b)

	if b.String() != "keep" {
		t.Errorf("builder = %q, want unchanged", b.String())
	}
}

func TestRepresentation_TypeToHTML(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)

	tests := []struct {
		name string
		fn   func(*strings.Builder)
		want string
	}{
		{
			name: "outline type with color",
			fn:   func(b *strings.Builder) { r.OutlineTypeToHTML(&OutlineType{Name: "Grow", Color: "#2E7D32"}, b) },
			want: `<span class="mf-type" style="background-color: #2E7D32;">Grow</span>`,
		},
		{
			name: "note type without color",
			fn:   func(b *strings.Builder) { r.NoteTypeToHTML(&NoteType{Name: "Idea"}, b) },
			want: `<span class="mf-type">Idea</span>`,
		},
		{
			name: "escaped name",
			fn:   func(b *strings.Builder) { r.NoteTypeToHTML(&NoteType{Name: "<b>"}, b) },
			want: `<span class="mf-type">&lt;b&gt;</span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			tt.fn(&b)
			if b.String() != tt.want {
				t.Errorf("got %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestRepresentation_TagsToHTML(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil)

	tests := []struct {
		name string
		tags []*Tag
		want string
	}{
		{"nil slice", nil, ""},
		{"empty slice", []*Tag{}, ""},
		{"only nil and unnamed", []*Tag{nil, {}}, ""},
		{
			name: "ordered",
			tags: []*Tag{{Name: "b"}, nil, {Name: "a", Color: "red"}},
			want: `<span class="mf-tags"><span class="mf-tag">b</span> <span class="mf-tag" style="background-color: red;">a</span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			r.TagsToHTML(tt.tags, &b)
			if b.String() != tt.want {
				t.Errorf("TagsToHTML() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestRepresentation_OutlineMetadataToHTML(t *testing.T) {
	t.Parallel()

	r := New(nil, nil, nil, WithDateFormat("iso"))

	var empty strings.Builder
	r.OutlineMetadataToHTML(nil, &empty)
	r.OutlineMetadataToHTML(&Outline{Name: "bare"}, &empty)
	if empty.String() != "" {
		t.Errorf("empty metadata rendered %q", empty.String())
	}

	var b strings.Builder
	r.OutlineMetadataToHTML(&Outline{
		Type:     &OutlineType{Name: "Memo"},
		Tags:     []*Tag{{Name: "later"}},
		Modified: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}, &b)

	want := `<div class="mf-metadata"><span class="mf-type">Memo</span>` +
		`<span class="mf-tags"><span class="mf-tag">later</span></span>` +
		`<span class="mf-timestamp">modified: 2025-01-31</span></div>` + "\n"
	if b.String() != want {
		t.Errorf("OutlineMetadataToHTML() =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestRepresentation_FgBgTextColorStyle_Escapes(t *testing.T) {
	t.Parallel()

	r := NewWithColors(nil, nil, NewLiveColors(StaticTheme{Text: `red" onload="x`}), nil)

	var b strings.Builder
	r.FgBgTextColorStyle(&b)
	if strings.Contains(b.String(), `" onload`) {
		t.Errorf("color value not escaped: %q", b.String())
	}
}

// ---------------------------------------------------------------------------
// Benchmarks
// ---------------------------------------------------------------------------

func BenchmarkRepresentation_OutlineToHTML(b *testing.B) {
	ontology := NewOntology()
	o := analysisOutline(ontology)
	var body bytes.Buffer
	for i := 0; i < 50; i++ {
		body.WriteString("Paragraph with **bold** and `code`.\n\n")
	}
	o.Notes = append(o.Notes, &Note{Name: "Long", Body: body.String()})

	b.Run("fragment", func(b *testing.B) {
		r := New(nil, ontology, nil)
		for b.Loop() {
			r.OutlineToHTML(o, false)
		}
	})
	b.Run("standalone", func(b *testing.B) {
		r := New(nil, ontology, nil)
		for b.Loop() {
			r.OutlineToHTML(o, true)
		}
	})
	b.Run("cached", func(b *testing.B) {
		r := New(nil, ontology, nil, WithFragmentCache(16))
		for b.Loop() {
			r.OutlineToHTML(o, false)
		}
	})
}
