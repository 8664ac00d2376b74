// Package assets provides the CSS themes used to style rendered documents.
// Themes can be loaded from embedded files or a custom filesystem path.
package assets

// DefaultStyleName is the name of the built-in theme used when none is chosen.
const DefaultStyleName = "report"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads an embedded CSS theme by name.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// ListStyles returns the names of the embedded themes, sorted.
func ListStyles() []string {
	names, _ := defaultLoader.ListStyles()
	return names
}
