package assets

import "errors"

// AssetResolver serves assets from an optional custom directory first and the
// embedded assets second. Only "not found" falls through to the embedded
// assets; invalid names and read failures are reported as is.
type AssetResolver struct {
	custom   *FilesystemLoader // nil without a custom base path
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath uses
// only the embedded assets; an invalid one returns ErrInvalidBasePath.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = custom
	}
	return r, nil
}

// LoadStyle loads a CSS style, custom directory first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return firstFound(r, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplateSet loads a template set, custom directory first.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return firstFound(r, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// StyleNames lists custom and embedded style names, sorted and deduplicated.
func (r *AssetResolver) StyleNames() []string {
	if r.custom == nil {
		return mergeNames(r.embedded.StyleNames())
	}
	return mergeNames(r.custom.StyleNames(), r.embedded.StyleNames())
}

// TemplateSetNames lists custom and embedded template sets, sorted and deduplicated.
func (r *AssetResolver) TemplateSetNames() []string {
	if r.custom == nil {
		return mergeNames(r.embedded.TemplateSetNames())
	}
	return mergeNames(r.custom.TemplateSetNames(), r.embedded.TemplateSetNames())
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

func firstFound[T any](r *AssetResolver, load func(AssetLoader) (T, error)) (T, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	v, err := load(r.custom)
	if err == nil || !isNotFound(err) {
		return v, err
	}
	return load(r.embedded)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ Catalog     = (*AssetResolver)(nil)
)
