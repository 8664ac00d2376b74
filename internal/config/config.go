// Package config loads the YAML configuration file used by the mdpdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxStyleLength       = 255
	MaxPathLength        = 4096
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape", "auto"
	MaxKeywordLength     = 50 // "NEEDS CLARIFICATION"
	MaxColorSpecLength   = 64 // "rgba(255, 255, 255, 0.5):#1a1a1a"
	MaxStatusColors      = 100
)

// Margin bounds in centimetres.
const (
	MinMarginCM = 0.25
	MaxMarginCM = 5.0
)

// KnownEngines lists the PDF engine names accepted in Render.Engines.
var KnownEngines = []string{"chrome", "fpdf"}

// Config holds all configuration for a conversion.
type Config struct {
	CSS          CSSConfig          `yaml:"css"`
	Assets       AssetsConfig       `yaml:"assets"`
	Page         PageConfig         `yaml:"page"`
	StatusColors StatusColorsConfig `yaml:"statusColors"`
	Render       RenderConfig       `yaml:"render"`
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // style name or path to a .css file (empty = default theme)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "a4", "letter", "legal" (default: "a4")
	Orientation string  `yaml:"orientation"` // "auto", "portrait", "landscape" (default: "auto")
	Margin      float64 `yaml:"margin"`      // centimetres (default: 1.5)
}

// StatusColorsConfig enables coloring of bold keywords in Status columns.
type StatusColorsConfig struct {
	Enabled bool              `yaml:"enabled"`
	Colors  map[string]string `yaml:"colors"` // KEYWORD: "#bg:#text" or "#bg"
}

// RenderConfig controls engine selection.
type RenderConfig struct {
	Engines []string `yaml:"engines"` // ordered preference (default: chrome, fpdf)
	Timeout string   `yaml:"timeout"` // Go duration, e.g. "45s"
}

// Validate checks enums, bounds and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if c.Page.Size != "" && !slices.Contains([]string{"a4", "letter", "legal"}, strings.ToLower(c.Page.Size)) {
		return fmt.Errorf("%w: page.size %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Size)
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Orientation != "" && !slices.Contains([]string{"auto", "portrait", "landscape"}, strings.ToLower(c.Page.Orientation)) {
		return fmt.Errorf("%w: page.orientation %q (must be auto, portrait, or landscape)", ErrInvalidValue, c.Page.Orientation)
	}
	if c.Page.Margin != 0 && (c.Page.Margin < MinMarginCM || c.Page.Margin > MaxMarginCM) {
		return fmt.Errorf("%w: page.margin must be between %.2f and %.1f cm, got %.2f", ErrInvalidValue, MinMarginCM, MaxMarginCM, c.Page.Margin)
	}

	if len(c.StatusColors.Colors) > MaxStatusColors {
		return fmt.Errorf("%w: statusColors.colors has %d entries (max %d)", ErrInvalidValue, len(c.StatusColors.Colors), MaxStatusColors)
	}
	for k, v := range c.StatusColors.Colors {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: statusColors.colors has an empty keyword", ErrInvalidValue)
		}
		if err := validateFieldLength("statusColors.colors key", k, MaxKeywordLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("statusColors.colors[%s]", k), v, MaxColorSpecLength); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.Render.Engines))
	for i, name := range c.Render.Engines {
		name = strings.ToLower(name)
		if !slices.Contains(KnownEngines, name) {
			return fmt.Errorf("%w: render.engines[%d] %q (must be one of %s)", ErrInvalidValue, i, name, strings.Join(KnownEngines, ", "))
		}
		if seen[name] {
			return fmt.Errorf("%w: render.engines lists %q twice", ErrInvalidValue, name)
		}
		seen[name] = true
	}
	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: render.timeout %q (use a positive duration like 30s)", ErrInvalidValue, c.Render.Timeout)
		}
	}

	return nil
}

// TimeoutDuration returns the parsed render timeout, zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Render.Timeout)
	return d
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: automatic orientation,
// coloring disabled, default engine order.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config named name is looked up, in order:
// current directory, then the user config directory (go-mdpdf/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, "go-mdpdf", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
