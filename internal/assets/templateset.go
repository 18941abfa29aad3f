package assets

import (
	"errors"
	"fmt"
	"io/fs"
)

// TemplateSet holds the templates wrapped around a standalone outline.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Header string // Document start, ends with the opening body tag
	Footer string // Document end
}

// Template file names inside a template set directory.
const (
	HeaderFile = "header.html"
	FooterFile = "footer.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "default"

// readTemplateSet assembles the set name from read, which returns the
// content of one file of the set directory. A set missing both files does
// not exist; a set missing one is incomplete.
func readTemplateSet(name string, read func(file string) ([]byte, error)) (*TemplateSet, error) {
	header, headerErr := read(HeaderFile)
	footer, footerErr := read(FooterFile)

	headerMissing := errors.Is(headerErr, fs.ErrNotExist)
	footerMissing := errors.Is(footerErr, fs.ErrNotExist)

	switch {
	case headerMissing && footerMissing:
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	case headerErr != nil && !headerMissing:
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, HeaderFile, headerErr)
	case footerErr != nil && !footerMissing:
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, FooterFile, footerErr)
	case headerMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, HeaderFile)
	case footerMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, FooterFile)
	}

	return &TemplateSet{
		Name:   name,
		Header: string(header),
		Footer: string(footer),
	}, nil
}
