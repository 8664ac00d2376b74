package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a theme name is safe for use as a filename.
// Dots are refused so "report.css" and "../x" cannot slip through.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
