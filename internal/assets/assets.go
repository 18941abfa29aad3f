package assets

// builtin serves the package-level helpers.
var builtin = NewEmbeddedLoader()

// LoadStyle returns a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return builtin.LoadStyle(name)
}

// LoadTemplateSet returns a built-in template set by name.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return builtin.LoadTemplateSet(name)
}
