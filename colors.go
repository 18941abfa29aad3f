package outline2html

// Export theme colors.
const (
	DefaultTextColor       = "#000000"
	DefaultBackgroundColor = "#FFFFFF"
)

// ColorsProvider supplies the two colors applied to standalone documents.
// Accessors never fail and never return an empty string.
type ColorsProvider interface {
	TextColor() string
	BackgroundColor() string
}

// ThemeSource reports the colors of a host theme that may change at runtime.
// Empty values mean "no preference".
type ThemeSource interface {
	TextColor() string
	BackgroundColor() string
}

// ExportColors is the fixed black-on-white provider used for file export.
type ExportColors struct {
	text       string
	background string
}

// NewExportColors creates the export provider.
func NewExportColors() *ExportColors {
	return &ExportColors{text: DefaultTextColor, background: DefaultBackgroundColor}
}

func (c *ExportColors) TextColor() string       { return c.text }
func (c *ExportColors) BackgroundColor() string { return c.background }

// LiveColors follows a ThemeSource, reading it on every call.
// Empty or missing source values fall back to the export colors.
type LiveColors struct {
	source ThemeSource
}

// NewLiveColors creates a provider delegating to source.
func NewLiveColors(source ThemeSource) *LiveColors {
	return &LiveColors{source: source}
}

func (c *LiveColors) TextColor() string {
	if c.source == nil {
		return DefaultTextColor
	}
	return colorOr(c.source.TextColor(), DefaultTextColor)
}

func (c *LiveColors) BackgroundColor() string {
	if c.source == nil {
		return DefaultBackgroundColor
	}
	return colorOr(c.source.BackgroundColor(), DefaultBackgroundColor)
}

// StaticTheme is a ThemeSource with fixed values, e.g. loaded from a config file.
type StaticTheme struct {
	Text       string
	Background string
}

func (t StaticTheme) TextColor() string       { return t.Text }
func (t StaticTheme) BackgroundColor() string { return t.Background }

func colorOr(color, fallback string) string {
	if color == "" {
		return fallback
	}
	return color
}

// Compile-time interface checks.
var (
	_ ColorsProvider = (*ExportColors)(nil)
	_ ColorsProvider = (*LiveColors)(nil)
	_ ThemeSource    = StaticTheme{}
)
