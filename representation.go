package outline2html

import (
	"html/template"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-outline2html/internal/assets"
	"github.com/alnah/go-outline2html/internal/dateutil"
	"github.com/alnah/go-outline2html/internal/pipeline"
)

// Minimal standalone templates used when the configured ones fail to render.
const (
	fallbackHeader = `<!DOCTYPE html><html><head><meta charset="utf-8"><title>{{.Title}}</title></head><body {{.BodyStyle}}>`
	fallbackFooter = `</body></html>`
)

var fallbackDocument = sync.OnceValue(func() *pipeline.DocumentWrapper {
	w, err := pipeline.NewDocumentWrapper(fallbackHeader, fallbackFooter)
	if err != nil {
		panic(err) // constant templates
	}
	return w
})

// defaultDocument parses the embedded default template set once per process.
var defaultDocument = sync.OnceValues(func() (*pipeline.DocumentWrapper, error) {
	ts, err := assets.LoadTemplateSet(assets.DefaultTemplateSetName)
	if err != nil {
		return nil, err
	}
	return pipeline.NewDocumentWrapper(ts.Header, ts.Footer)
})

// defaultStyle loads the embedded default stylesheet once per process.
var defaultStyle = sync.OnceValue(func() string {
	css, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return ""
	}
	return css
})

// Representation renders outlines, notes and Markdown text to HTML.
//
// It reads its Configuration on every call and pushes transcoder options
// only when they changed since the previous call. Not safe for concurrent
// use; see RepresentationPool.
type Representation struct {
	config      Configuration
	colors      ColorsProvider
	markdown    *MarkdownOutlineRepresentation
	interceptor Interceptor
	transcoder  Transcoder
	sanitizer   *pipeline.Sanitizer
	cache       *pipeline.FragmentCache // nil when disabled
	document    *pipeline.DocumentWrapper
	style       string
	codeStyle   string
	dates       *dateutil.Formatter
	title       string
	logger      *zap.Logger

	lastOptions  TranscoderOptions
	highlightCSS *string // computed on first standalone render with highlighting
}

// Option configures a Representation.
type Option func(*representationOptions)

type representationOptions struct {
	transcoder Transcoder
	logger     *zap.Logger
	style      *string
	templates  *TemplateSet
	codeStyle  string
	dateFormat string
	cacheSize  int
	title      string
}

// WithTranscoder sets the Markdown transcoder. Default: goldmark.
func WithTranscoder(t Transcoder) Option {
	return func(o *representationOptions) {
		o.transcoder = t
	}
}

// WithLogger sets the logger for option changes and degraded renders.
// Default: no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *representationOptions) {
		o.logger = logger
	}
}

// WithStyle sets the stylesheet embedded in standalone documents.
// Default: the built-in "default" style. An empty string embeds no style.
func WithStyle(css string) Option {
	return func(o *representationOptions) {
		o.style = &css
	}
}

// WithDocumentTemplates sets the standalone header and footer templates.
// Templates that fail to parse are logged and the defaults kept.
func WithDocumentTemplates(ts *TemplateSet) Option {
	return func(o *representationOptions) {
		o.templates = ts
	}
}

// WithCodeStyle sets the chroma style used for highlighted code.
// Default: "github".
func WithCodeStyle(name string) Option {
	return func(o *representationOptions) {
		o.codeStyle = name
	}
}

// WithDateFormat sets the timestamp format of metadata blocks, using tokens
// like YYYY-MM-DD HH:mm or a preset (iso, european, us, long, datetime, full).
// Invalid formats are logged and the default kept.
func WithDateFormat(format string) Option {
	return func(o *representationOptions) {
		o.dateFormat = format
	}
}

// WithFragmentCache memoizes up to capacity transcoded fragments keyed by
// options and Markdown. 0 disables the cache (default).
func WithFragmentCache(capacity int) Option {
	return func(o *representationOptions) {
		o.cacheSize = capacity
	}
}

// WithTitle sets the document title used by MarkdownToHTML standalone output.
func WithTitle(title string) Option {
	return func(o *representationOptions) {
		o.title = title
	}
}

// New creates a Representation that owns an ExportColors provider.
// A nil cfg uses DefaultSettings(), a nil ontology a fresh NewOntology(),
// and a nil interceptor adds no stage. Construction never fails.
func New(cfg Configuration, ontology *Ontology, interceptor Interceptor, opts ...Option) *Representation {
	return NewWithColors(cfg, ontology, NewExportColors(), interceptor, opts...)
}

// NewWithColors creates a Representation styled by colors, which must
// outlive it. A nil colors falls back to an owned ExportColors.
func NewWithColors(cfg Configuration, ontology *Ontology, colors ColorsProvider, interceptor Interceptor, opts ...Option) *Representation {
	o := representationOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		cfg = DefaultSettings()
	}
	if colors == nil {
		colors = NewExportColors()
	}

	r := &Representation{
		config:      cfg,
		colors:      colors,
		markdown:    NewMarkdownOutlineRepresentation(ontology),
		interceptor: interceptor,
		transcoder:  o.transcoder,
		sanitizer:   pipeline.NewSanitizer(),
		codeStyle:   o.codeStyle,
		title:       o.title,
		logger:      o.logger,
		lastOptions: OptionsUnset,
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.codeStyle == "" {
		r.codeStyle = pipeline.DefaultCodeStyle
	}
	if r.transcoder == nil {
		r.transcoder = pipeline.NewGoldmarkTranscoder(pipeline.WithCodeStyle(r.codeStyle))
	}
	if o.cacheSize > 0 {
		r.cache = pipeline.NewFragmentCache(o.cacheSize)
	}

	r.style = defaultStyle()
	if o.style != nil {
		r.style = *o.style
	}

	r.document = r.resolveDocument(o.templates)
	r.dates = r.resolveDates(o.dateFormat)

	return r
}

func (r *Representation) resolveDocument(ts *TemplateSet) *pipeline.DocumentWrapper {
	if ts != nil {
		w, err := pipeline.NewDocumentWrapper(ts.Header, ts.Footer)
		if err == nil {
			return w
		}
		r.logger.Warn("document templates rejected, using defaults",
			zap.String("templates", ts.Name), zap.Error(err))
	}

	w, err := defaultDocument()
	if err != nil {
		r.logger.Warn("default document templates unavailable", zap.Error(err))
		return fallbackDocument()
	}
	return w
}

func (r *Representation) resolveDates(format string) *dateutil.Formatter {
	if format != "" {
		f, err := dateutil.NewFormatter(format)
		if err == nil {
			return f
		}
		r.logger.Warn("date format rejected, using default",
			zap.String("format", format), zap.Error(err))
	}
	f, _ := dateutil.NewFormatter(dateutil.DefaultDateFormat)
	return f
}

// MarkdownRepresentation returns the representation serializing outlines.
func (r *Representation) MarkdownRepresentation() *MarkdownOutlineRepresentation {
	return r.markdown
}

// TranscoderOptions returns the options last pushed to the transcoder,
// or OptionsUnset before the first render.
func (r *Representation) TranscoderOptions() TranscoderOptions {
	return r.lastOptions
}

// refreshOptions derives options from the Configuration and pushes them to
// the transcoder only when they differ from the previous call.
func (r *Representation) refreshOptions() TranscoderOptions {
	current := TranscoderOptionsFor(r.config)
	if current != r.lastOptions {
		r.logger.Debug("transcoder options changed",
			zap.Stringer("from", r.lastOptions),
			zap.Stringer("to", current))
		r.transcoder.SetOptions(current)
		r.lastOptions = current
	}
	return current
}

// documentData fills the standalone templates for the given options.
func (r *Representation) documentData(title string, opts TranscoderOptions) *pipeline.DocumentData {
	css := r.style
	if opts.Has(OptionCodeHighlight) {
		if hl := r.codeCSS(); hl != "" {
			css += "\n" + hl
		}
	}

	var style strings.Builder
	r.FgBgTextColorStyle(&style)

	return &pipeline.DocumentData{
		Title:     title,
		CSS:       template.CSS(css),                 // #nosec G203 -- stylesheet comes from assets or the host
		BodyStyle: template.HTMLAttr(style.String()), // #nosec G203 -- values are escaped by FgBgTextColorStyle
		Math:      opts.Has(OptionMath),
		Diagrams:  opts.Has(OptionDiagrams),
	}
}

func (r *Representation) codeCSS() string {
	if r.highlightCSS == nil {
		css, err := pipeline.HighlightCSS(r.codeStyle)
		if err != nil {
			r.logger.Warn("highlight stylesheet unavailable", zap.String("style", r.codeStyle), zap.Error(err))
		}
		r.highlightCSS = &css
	}
	return *r.highlightCSS
}
