package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// resourceAttr is a path-carrying attribute of one element.
type resourceAttr struct {
	key string
	// link values may carry ?query and #fragment suffixes, kept after
	// rewriting; other values are file names where '#' is literal.
	link bool
}

// resourceAttrs lists the attributes RewriteRelativePaths resolves.
var resourceAttrs = map[atom.Atom]resourceAttr{
	atom.Img:    {key: "src"},
	atom.Video:  {key: "src"},
	atom.Audio:  {key: "src"},
	atom.Source: {key: "src"},
	atom.A:      {key: "href", link: true},
}

// RewriteRelativePaths resolves relative resource paths in an HTML fragment
// or document against basePath, the directory of the outline file, and
// writes them as file:// URLs. An empty basePath returns the input.
//
// URLs with a scheme (including nav:// links), anchors, absolute paths and
// paths escaping basePath are left as written. srcset and CSS url()
// references are not touched.
func RewriteRelativePaths(htmlContent, basePath string) (string, error) {
	if basePath == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return "", err
	}

	root, fragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	for n := range root.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		if ra, ok := resourceAttrs[n.DataAtom]; ok {
			resolveAttr(n, ra, absBase)
		}
	}

	return renderHTML(root, fragment)
}

// parseHTML parses a full document when content starts with a doctype or an
// html tag, and a body fragment otherwise. Fragment nodes are gathered under
// a document node so both shapes are walked the same way.
func parseHTML(content string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderHTML serializes root; fragments render their children only.
func renderHTML(root *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		err := html.Render(&b, root)
		return b.String(), err
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// resolveAttr rewrites the ra attribute of n when it holds a relative path
// staying under basePath.
func resolveAttr(n *html.Node, ra resourceAttr, basePath string) {
	for i, attr := range n.Attr {
		if attr.Key != ra.key || !isRelativePath(attr.Val) {
			continue
		}

		path, suffix := attr.Val, ""
		if ra.link {
			if cut := strings.IndexAny(path, "?#"); cut >= 0 {
				path, suffix = path[:cut], path[cut:]
			}
			if path == "" {
				continue
			}
		}

		absPath := filepath.Join(basePath, path)
		if !isPathUnderDir(absPath, basePath) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath) + suffix
	}
}

// isRelativePath reports whether path is relative to the outline directory.
func isRelativePath(path string) bool {
	switch {
	case path == "",
		strings.HasPrefix(path, "#"),
		strings.HasPrefix(path, "//"),
		filepath.IsAbs(path):
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

// isPathUnderDir reports whether absPath is dir or lies below it.
func isPathUnderDir(absPath, dir string) bool {
	sep := string(filepath.Separator)
	cleanDir := strings.TrimSuffix(filepath.Clean(dir), sep) + sep
	return strings.HasPrefix(filepath.Clean(absPath)+sep, cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
