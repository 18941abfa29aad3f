package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves styles and template sets from a directory on disk,
// letting users override or extend the embedded assets.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
	fsys     fs.FS  // rooted at basePath, used for listing
}

// NewFilesystemLoader creates a FilesystemLoader for basePath.
// Returns ErrInvalidBasePath unless basePath is a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath, fsys: os.DirFS(absPath)}, nil
}

// LoadStyle reads {basePath}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := f.read(filepath.Join("styles", name+".css"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
		}
		return "", err
	}
	return string(content), nil
}

// LoadTemplateSet reads header.html and footer.html from {basePath}/templates/{name}.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join("templates", name)
	if _, err := f.contained(dir + string(filepath.Separator)); err != nil {
		return nil, err
	}
	return readTemplateSet(name, func(file string) ([]byte, error) {
		return f.read(filepath.Join(dir, file))
	})
}

// StyleNames lists the styles found under {basePath}/styles.
func (f *FilesystemLoader) StyleNames() []string {
	return styleNames(f.fsys, "styles")
}

// TemplateSetNames lists the template sets found under {basePath}/templates.
func (f *FilesystemLoader) TemplateSetNames() []string {
	return templateSetNames(f.fsys, "templates")
}

// read returns the content of rel once it is known to stay inside basePath.
// Not-exist errors are returned unwrapped; other failures wrap ErrAssetRead.
func (f *FilesystemLoader) read(rel string) ([]byte, error) {
	path, err := f.contained(rel)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path) // #nosec G304 -- path contained in basePath
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return content, err
}

// contained resolves rel against basePath, following symlinks, and returns
// ErrPathTraversal when the result leaves basePath. Paths that do not exist
// yet are checked as written.
func (f *FilesystemLoader) contained(rel string) (string, error) {
	path, err := filepath.Abs(filepath.Join(f.basePath, rel))
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if realPath, err := filepath.EvalSymlinks(path); err == nil {
		path = realPath
	}

	// The separator suffix rejects sibling prefixes such as /base/pathevil.
	if !strings.HasPrefix(path, f.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return path, nil
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*FilesystemLoader)(nil)
	_ Catalog     = (*FilesystemLoader)(nil)
)
