package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-outline2html/internal/dateutil"
	"github.com/alnah/go-outline2html/internal/fileutil"
	"github.com/alnah/go-outline2html/internal/pipeline"
	"github.com/alnah/go-outline2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxTitleLength     = 200  // Document title
	MaxColorLength     = 64   // "#RRGGBBAA", "rgb(...)", named colors
	MaxAssetNameLength = 64   // Style or template set name
	MaxCodeStyleLength = 50   // chroma style name
	MaxDateFormatLen   = dateutil.MaxDateFormatLength
)

// ConfigDirName is the directory searched under the user config directory.
const ConfigDirName = "go-outline2html"

// Config holds all configuration for outline export.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Theme    ThemeConfig    `yaml:"theme"`
	Export   ExportConfig   `yaml:"export"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// MarkdownConfig selects the transcoder and its rendering features.
type MarkdownConfig struct {
	Engine         string `yaml:"engine"` // "goldmark" or "gomarkdown" (empty = goldmark)
	Math           bool   `yaml:"math"`
	Diagrams       bool   `yaml:"diagrams"`
	CodeHighlight  bool   `yaml:"codeHighlight"`
	CodeStyle      string `yaml:"codeStyle"` // chroma style name
	HardWraps      bool   `yaml:"hardWraps"`
	RawHTML        bool   `yaml:"rawHTML"`
	HeadingIDs     bool   `yaml:"headingIDs"`
	HighlightMarks bool   `yaml:"highlightMarks"`
	Footnotes      bool   `yaml:"footnotes"`
	Sanitize       bool   `yaml:"sanitize"`
}

// ThemeConfig holds the two colors applied to the document body.
type ThemeConfig struct {
	TextColor       string `yaml:"textColor"`       // Empty = #000000
	BackgroundColor string `yaml:"backgroundColor"` // Empty = #FFFFFF
}

// ExportConfig defines standalone document options.
type ExportConfig struct {
	Style         string `yaml:"style"`         // Style name or path to a .css file
	Templates     string `yaml:"templates"`     // Template set name (default: "default")
	DateFormat    string `yaml:"dateFormat"`    // dateutil tokens or preset
	FragmentCache int    `yaml:"fragmentCache"` // 0 disables the fragment cache
	Title         string `yaml:"title"`         // Fallback title for plain Markdown
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// cssColorPattern accepts hex colors, functional notations and keywords.
var cssColorPattern = regexp.MustCompile(
	`^(#[0-9a-fA-F]{3,4}|#[0-9a-fA-F]{6}|#[0-9a-fA-F]{8}|(rgb|rgba|hsl|hsla)\([0-9.,%\s/]+\)|[a-zA-Z]+)$`,
)

// ValidColor reports whether s is usable as a CSS color value.
// The empty string is accepted and means "use the default".
func ValidColor(s string) bool {
	return s == "" || cssColorPattern.MatchString(s)
}

// Validate checks field lengths and values.
// Called automatically by LoadConfig, but available for callers that build a
// Config from flags or environment variables.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Markdown
	if c.Markdown.Engine != "" {
		engine := strings.ToLower(c.Markdown.Engine)
		if !slices.Contains(pipeline.EngineNames(), engine) {
			return fmt.Errorf("%w: markdown.engine %q (must be one of %s)",
				ErrInvalidValue, c.Markdown.Engine, strings.Join(pipeline.EngineNames(), ", "))
		}
	}
	if err := validateFieldLength("markdown.codeStyle", c.Markdown.CodeStyle, MaxCodeStyleLength); err != nil {
		return err
	}
	if c.Markdown.CodeStyle != "" && !slices.Contains(styles.Names(), c.Markdown.CodeStyle) {
		return fmt.Errorf("%w: markdown.codeStyle %q is not a known highlighting style", ErrInvalidValue, c.Markdown.CodeStyle)
	}

	// Theme
	colors := []struct{ field, value string }{
		{"theme.textColor", c.Theme.TextColor},
		{"theme.backgroundColor", c.Theme.BackgroundColor},
	}
	for _, col := range colors {
		if err := validateFieldLength(col.field, col.value, MaxColorLength); err != nil {
			return err
		}
		if !ValidColor(col.value) {
			return fmt.Errorf("%w: %s %q is not a CSS color", ErrInvalidValue, col.field, col.value)
		}
	}

	// Export
	if fileutil.IsFilePath(c.Export.Style) {
		if err := validateFieldLength("export.style", c.Export.Style, MaxPathLength); err != nil {
			return err
		}
	} else if err := validateFieldLength("export.style", c.Export.Style, MaxAssetNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.templates", c.Export.Templates, MaxAssetNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.title", c.Export.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.dateFormat", c.Export.DateFormat, MaxDateFormatLen); err != nil {
		return err
	}
	if c.Export.DateFormat != "" {
		if _, err := dateutil.Layout(c.Export.DateFormat); err != nil {
			return fmt.Errorf("export.dateFormat: %w", err)
		}
	}
	if c.Export.FragmentCache < 0 || c.Export.FragmentCache > pipeline.MaxFragmentCacheSize {
		return fmt.Errorf("%w: export.fragmentCache must be between 0 and %d, got %d",
			ErrInvalidValue, pipeline.MaxFragmentCacheSize, c.Export.FragmentCache)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Rendering features match the library's DefaultSettings.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{
			Engine:         pipeline.DefaultEngine,
			CodeHighlight:  true,
			CodeStyle:      pipeline.DefaultCodeStyle,
			HeadingIDs:     true,
			HighlightMarks: true,
			Footnotes:      true,
		},
		Export: ExportConfig{
			Style:      "default",
			Templates:  "default",
			DateFormat: dateutil.DefaultDateFormat,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-outline2html/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
