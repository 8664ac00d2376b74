package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the theme is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a theme by name, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	// Validation and I/O errors are not masked by the embedded fallback.
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// ListStyles merges custom and embedded theme names.
func (r *AssetResolver) ListStyles() ([]string, error) {
	names, err := r.embedded.ListStyles()
	if err != nil {
		return nil, err
	}
	if r.custom != nil {
		custom, err := r.custom.ListStyles()
		if err != nil {
			return nil, err
		}
		names = append(names, custom...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// ResolveStyle accepts either a theme name or a path to a .css file.
// An empty value selects DefaultStyleName.
func (r *AssetResolver) ResolveStyle(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultStyleName
	}
	if !fileutil.IsFilePath(nameOrPath) {
		return r.LoadStyle(nameOrPath)
	}

	if !strings.EqualFold(filepath.Ext(nameOrPath), ".css") {
		return "", fmt.Errorf("%w: %q is not a .css file", ErrInvalidAssetName, nameOrPath)
	}
	content, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-selected stylesheet
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, nameOrPath)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

var _ AssetLoader = (*AssetResolver)(nil)
