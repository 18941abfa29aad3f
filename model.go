package outline2html

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Outline is a named, typed document made of an ordered sequence of notes.
// It is owned by the host; the representation only reads it.
type Outline struct {
	Key         string // Storage identifier, usually a file path
	Name        string
	Type        *OutlineType
	Tags        []*Tag
	Created     time.Time
	Modified    time.Time
	Read        time.Time
	Description string // Markdown preamble before the first note
	Notes       []*Note
}

// Note is a section of an outline.
type Note struct {
	Name     string
	Type     *NoteType
	Tags     []*Tag
	Depth    int // 0 = top level
	Created  time.Time
	Modified time.Time
	Body     string // Markdown
}

// OutlineType classifies an outline (e.g. "Grow", "Analysis").
type OutlineType struct {
	Name  string
	Color string // CSS color of the badge, empty for the stylesheet default
}

// NoteType classifies a note (e.g. "Idea", "Action").
type NoteType struct {
	Name  string
	Color string
}

// Tag labels outlines and notes.
type Tag struct {
	Name  string
	Color string
}

// Default type names assigned when Markdown carries no type.
const (
	DefaultOutlineTypeName = "Outline"
	DefaultNoteTypeName    = "Note"
)

var defaultOutlineTypes = []OutlineType{
	{Name: DefaultOutlineTypeName},
	{Name: "Grow", Color: "#2E7D32"},
	{Name: "Analysis", Color: "#1565C0"},
	{Name: "Plan", Color: "#6A1B9A"},
	{Name: "Project", Color: "#EF6C00"},
	{Name: "Memo", Color: "#546E7A"},
}

var defaultNoteTypes = []NoteType{
	{Name: DefaultNoteTypeName},
	{Name: "Action", Color: "#C62828"},
	{Name: "Idea", Color: "#F9A825"},
	{Name: "Question", Color: "#00838F"},
	{Name: "Answer", Color: "#00695C"},
	{Name: "Conclusion", Color: "#4527A0"},
	{Name: "Fact", Color: "#37474F"},
}

var defaultTags = []Tag{
	{Name: "important", Color: "#D32F2F"},
	{Name: "cool", Color: "#1976D2"},
	{Name: "later", Color: "#7B1FA2"},
	{Name: "obsolete", Color: "#757575"},
	{Name: "todo", Color: "#F57C00"},
	{Name: "done", Color: "#388E3C"},
	{Name: "problem", Color: "#C2185B"},
	{Name: "solution", Color: "#0097A7"},
}

// Ontology registers the known outline types, note types and tags.
// Lookups are case-insensitive; unknown names are created on demand so
// parsing never fails on user-defined labels. Safe for concurrent use.
type Ontology struct {
	mu           sync.Mutex
	outlineTypes map[string]*OutlineType
	noteTypes    map[string]*NoteType
	tags         map[string]*Tag
}

// NewOntology creates an ontology seeded with the default types and tags.
func NewOntology() *Ontology {
	o := &Ontology{
		outlineTypes: make(map[string]*OutlineType, len(defaultOutlineTypes)),
		noteTypes:    make(map[string]*NoteType, len(defaultNoteTypes)),
		tags:         make(map[string]*Tag, len(defaultTags)),
	}
	for _, t := range defaultOutlineTypes {
		o.outlineTypes[ontologyKey(t.Name)] = &t
	}
	for _, t := range defaultNoteTypes {
		o.noteTypes[ontologyKey(t.Name)] = &t
	}
	for _, t := range defaultTags {
		o.tags[ontologyKey(t.Name)] = &t
	}
	return o
}

// FindOrCreateOutlineType returns the registered outline type named name,
// registering a new uncolored one if needed. Empty names return nil.
func (o *Ontology) FindOrCreateOutlineType(name string) *OutlineType {
	return findOrCreate(&o.mu, o.outlineTypes, name, func(n string) *OutlineType {
		return &OutlineType{Name: n}
	})
}

// FindOrCreateNoteType returns the registered note type named name,
// registering a new uncolored one if needed. Empty names return nil.
func (o *Ontology) FindOrCreateNoteType(name string) *NoteType {
	return findOrCreate(&o.mu, o.noteTypes, name, func(n string) *NoteType {
		return &NoteType{Name: n}
	})
}

// FindOrCreateTag returns the registered tag named name,
// registering a new uncolored one if needed. Empty names return nil.
func (o *Ontology) FindOrCreateTag(name string) *Tag {
	return findOrCreate(&o.mu, o.tags, name, func(n string) *Tag {
		return &Tag{Name: n}
	})
}

// TagNames returns the registered tag names in sorted order.
func (o *Ontology) TagNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	names := make([]string, 0, len(o.tags))
	for _, t := range o.tags {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

func findOrCreate[T any](mu *sync.Mutex, registry map[string]*T, name string, create func(string) *T) *T {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	key := ontologyKey(name)
	if v, ok := registry[key]; ok {
		return v
	}
	v := create(name)
	registry[key] = v
	return v
}

func ontologyKey(name string) string {
	return strings.ToLower(name)
}
