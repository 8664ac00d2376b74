package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// ErrInvalidEnv reports an MDPDF_* variable whose value cannot be used.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envPrefix marks the variables read by mdpdf.
const envPrefix = "MDPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        // MDPDF_CONFIG: config file name or path
	Style        string        // MDPDF_STYLE: CSS style name or path
	Engine       string        // MDPDF_ENGINE: auto, chrome, fpdf
	Timeout      time.Duration // MDPDF_TIMEOUT: PDF generation timeout
	PageSize     string        // MDPDF_PAGE_SIZE: a4, letter, legal
	StatusColors *bool         // MDPDF_STATUS_COLORS: nil when unset
}

// knownEnvVars lists valid MDPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDPDF_CONFIG":        true,
	"MDPDF_STYLE":         true,
	"MDPDF_ENGINE":        true,
	"MDPDF_TIMEOUT":       true,
	"MDPDF_PAGE_SIZE":     true,
	"MDPDF_STATUS_COLORS": true,
	"MDPDF_CONTAINER":     true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable values fail instead of being silently ignored.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDPDF_CONFIG"),
		Style:      os.Getenv("MDPDF_STYLE"),
		Engine:     strings.ToLower(strings.TrimSpace(os.Getenv("MDPDF_ENGINE"))),
		PageSize:   strings.ToLower(strings.TrimSpace(os.Getenv("MDPDF_PAGE_SIZE"))),
	}

	if v := os.Getenv("MDPDF_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: MDPDF_TIMEOUT=%q (use a positive duration like 30s)", ErrInvalidEnv, v)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv("MDPDF_STATUS_COLORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: MDPDF_STATUS_COLORS=%q (use true or false)", ErrInvalidEnv, v)
		}
		cfg.StatusColors = &b
	}

	if cfg.Engine != "" && !validEngineChoice(cfg.Engine) {
		return nil, fmt.Errorf("%w: MDPDF_ENGINE=%q (use auto, chrome or fpdf)", ErrInvalidEnv, cfg.Engine)
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized MDPDF_* variables.
// Helps catch typos like MDPDF_TIMOUT.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Environment values override the config file; CLI flags are merged
// afterwards by mergeFlags, giving flags > env > config file > defaults.
// Timeout and engine are resolved separately.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.CSS.Style = env.Style
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.StatusColors != nil {
		cfg.StatusColors.Enabled = *env.StatusColors
	}
}
