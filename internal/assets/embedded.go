package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader serves the styles and template sets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the embedded stylesheet styles/{name}.css.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile(path.Join("styles", name+".css"))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet returns header.html and footer.html from templates/{name}.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	return readTemplateSet(name, func(file string) ([]byte, error) {
		return templates.ReadFile(path.Join(dir, file))
	})
}

// StyleNames lists the embedded style names in lexical order.
func (e *EmbeddedLoader) StyleNames() []string {
	return styleNames(styles, "styles")
}

// TemplateSetNames lists the embedded template sets in lexical order.
func (e *EmbeddedLoader) TemplateSetNames() []string {
	return templateSetNames(templates, "templates")
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*EmbeddedLoader)(nil)
	_ Catalog     = (*EmbeddedLoader)(nil)
)
