package assets

// AssetLoader loads stylesheets and standalone document template sets by name.
// Names are validated with ValidateAssetName before any lookup.
type AssetLoader interface {
	// LoadStyle returns ErrStyleNotFound for unknown names.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns ErrTemplateSetNotFound for unknown names and
	// ErrIncompleteTemplateSet when only one of the two files exists.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
