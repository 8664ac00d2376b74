package assets

// AssetLoader defines the contract for loading CSS themes.
type AssetLoader interface {
	// LoadStyle loads a CSS theme by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// ListStyles returns the available theme names, sorted.
	ListStyles() ([]string, error)
}
