package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteRelativePaths turns relative img[src] values into absolute file://
// URLs under sourceDir. The chrome engine loads the document from a temp
// directory, so paths relative to the Markdown file would otherwise break.
// Links (a[href]) are left alone: they are navigation, not page content.
// Returns the number of rewritten attributes.
func rewriteRelativePaths(doc *html.Node, sourceDir string) int {
	if sourceDir == "" {
		return 0
	}
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return 0
	}

	rewritten := 0
	walkElements(doc, func(n *html.Node) bool {
		if n.DataAtom != atom.Img {
			return true
		}
		src, ok := getAttr(n, "src")
		if !ok || !isRelativePath(src) {
			return true
		}
		abs := filepath.Join(absDir, filepath.FromSlash(src))
		if !isPathUnderDir(abs, absDir) {
			return true
		}
		setAttr(n, "src", pathToFileURL(abs))
		rewritten++
		return true
	})
	return rewritten
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false // http:, https:, file:, data:
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
