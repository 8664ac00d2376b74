package main

// Notes:
// - loadEnvConfig and warnUnknownEnvVars read the process environment, so
//   these tests use t.Setenv() and cannot run in parallel.
// - applyEnvConfig is pure and runs in parallel.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		clearMDPDFEnv(t)
		t.Setenv("MDPDF_CONFIG", "/path/to/config.yaml")
		t.Setenv("MDPDF_STYLE", "plain")
		t.Setenv("MDPDF_ENGINE", " FPDF ")
		t.Setenv("MDPDF_TIMEOUT", "2m")
		t.Setenv("MDPDF_PAGE_SIZE", "Letter")
		t.Setenv("MDPDF_STATUS_COLORS", "true")

		cfg, err := loadEnvConfig()
		if err != nil {
			t.Fatalf("loadEnvConfig() unexpected error: %v", err)
		}

		if cfg.ConfigPath != "/path/to/config.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.Style != "plain" {
			t.Errorf("Style = %q, want plain", cfg.Style)
		}
		if cfg.Engine != "fpdf" {
			t.Errorf("Engine = %q, want fpdf", cfg.Engine)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
		}
		if cfg.PageSize != "letter" {
			t.Errorf("PageSize = %q, want letter", cfg.PageSize)
		}
		if cfg.StatusColors == nil || !*cfg.StatusColors {
			t.Errorf("StatusColors = %v, want true", cfg.StatusColors)
		}
	})

	t.Run("unset", func(t *testing.T) {
		clearMDPDFEnv(t)

		cfg, err := loadEnvConfig()
		if err != nil {
			t.Fatalf("loadEnvConfig() unexpected error: %v", err)
		}
		if cfg.Timeout != 0 || cfg.StatusColors != nil || cfg.Engine != "" {
			t.Errorf("cfg = %+v, want zero values", cfg)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct{ key, value string }{
			{"MDPDF_TIMEOUT", "abc"},
			{"MDPDF_TIMEOUT", "-1s"},
			{"MDPDF_STATUS_COLORS", "sometimes"},
			{"MDPDF_ENGINE", "weasyprint"},
		}
		for _, tt := range tests {
			clearMDPDFEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := loadEnvConfig(); !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("%s=%q: error = %v, want ErrInvalidEnv", tt.key, tt.value, err)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	clearMDPDFEnv(t)
	t.Setenv("MDPDF_STYLE", "plain")
	t.Setenv("MDPDF_TIMOUT", "30s")
	t.Setenv("MDPDF_ENGNE", "fpdf")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	out := buf.String()

	for _, want := range []string{"MDPDF_ENGNE", "MDPDF_TIMOUT"} {
		if !strings.Contains(out, "unknown environment variable "+want) {
			t.Errorf("output = %q, want warning for %s", out, want)
		}
	}
	if strings.Contains(out, "MDPDF_STYLE") {
		t.Errorf("known variable warned: %q", out)
	}
	if strings.Index(out, "MDPDF_ENGNE") > strings.Index(out, "MDPDF_TIMOUT") {
		t.Error("warnings should be sorted")
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment overrides config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	off := false
	cfg := &config.Config{
		CSS:          config.CSSConfig{Style: "report"},
		Page:         config.PageConfig{Size: "a4", Orientation: "portrait"},
		StatusColors: config.StatusColorsConfig{Enabled: true},
	}
	applyEnvConfig(&envConfig{Style: "plain", PageSize: "legal", StatusColors: &off}, cfg)

	if cfg.CSS.Style != "plain" {
		t.Errorf("Style = %q, want plain", cfg.CSS.Style)
	}
	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q, want legal", cfg.Page.Size)
	}
	if cfg.Page.Orientation != "portrait" {
		t.Errorf("Page.Orientation = %q, env has no orientation", cfg.Page.Orientation)
	}
	if cfg.StatusColors.Enabled {
		t.Error("MDPDF_STATUS_COLORS=false should disable coloring")
	}

	untouched := &config.Config{CSS: config.CSSConfig{Style: "report"}}
	applyEnvConfig(&envConfig{}, untouched)
	if untouched.CSS.Style != "report" {
		t.Errorf("empty env changed Style to %q", untouched.CSS.Style)
	}
}
