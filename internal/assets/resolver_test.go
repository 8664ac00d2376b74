package assets

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil || r.custom != nil {
		t.Errorf("NewAssetResolver(\"\") = %v, %v; want embedded only", r, err)
	}

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyle(t, base, "report", "/* overridden */")
	writeStyle(t, base, "brand", "/* brand */")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		style    string
		contains string
		wantErr  error
	}{
		{name: "custom overrides embedded", style: "report", contains: "overridden"},
		{name: "custom only", style: "brand", contains: "brand"},
		{name: "falls back to embedded", style: "plain", contains: "serif"},
		{name: "not found anywhere", style: "nope", wantErr: ErrStyleNotFound},
		{name: "validation not masked", style: "a/b", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := r.LoadStyle(tt.style)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadStyle(%q) error = %v, want %v", tt.style, err, tt.wantErr)
				}
				return
			}
			if err != nil || !strings.Contains(css, tt.contains) {
				t.Errorf("LoadStyle(%q) = %q, %v; want %q", tt.style, css, err, tt.contains)
			}
		})
	}
}

func TestAssetResolver_ListStyles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyle(t, base, "brand", "")
	writeStyle(t, base, "report", "")

	r, err := NewAssetResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	names, err := r.ListStyles()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"brand", "plain", "report"}
	if !slices.Equal(names, want) {
		t.Errorf("ListStyles() = %v, want %v", names, want)
	}
}

func TestAssetResolver_ResolveStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssPath := filepath.Join(dir, "mine.css")
	if err := os.WriteFile(cssPath, []byte("h1 { color: red; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "mine.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		contains string
		wantErr  error
	}{
		{name: "empty selects default", input: "", contains: "#2c3e50"},
		{name: "theme name", input: "plain", contains: "serif"},
		{name: "css path", input: cssPath, contains: "color: red"},
		{name: "missing path", input: filepath.Join(dir, "gone.css"), wantErr: ErrStyleNotFound},
		{name: "non-css path", input: txtPath, wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := r.ResolveStyle(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveStyle(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil || !strings.Contains(css, tt.contains) {
				t.Errorf("ResolveStyle(%q) = %q, %v", tt.input, css, err)
			}
		})
	}
}

func TestAssetResolver_ImplementsAssetLoader(t *testing.T) {
	t.Parallel()
	var _ AssetLoader = (*AssetResolver)(nil)
}
