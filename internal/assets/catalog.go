package assets

import (
	"io/fs"
	"path"
	"slices"
	"strings"
)

// Catalog lists the asset names a loader can serve.
type Catalog interface {
	StyleNames() []string
	TemplateSetNames() []string
}

// styleNames lists "*.css" files of dir in fsys, without extension.
func styleNames(fsys fs.FS, dir string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".css" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".css")
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	return names
}

// templateSetNames lists subdirectories of dir in fsys holding a header file.
func templateSetNames(fsys fs.FS, dir string) []string {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || ValidateAssetName(entry.Name()) != nil {
			continue
		}
		if _, err := fs.Stat(fsys, path.Join(dir, entry.Name(), HeaderFile)); err == nil {
			names = append(names, entry.Name())
		}
	}
	return names
}

// mergeNames returns the sorted union of name lists.
func mergeNames(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
