package assets

// Notes:
// - Symlink escape is tested on platforms where os.Symlink works; the test
//   skips when the call fails (Windows without developer mode).

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeStyle(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "styles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".css"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"valid directory", t.TempDir(), nil},
		{"empty path", "", ErrInvalidBasePath},
		{"missing directory", filepath.Join(t.TempDir(), "missing"), ErrInvalidBasePath},
		{"regular file", file, ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFilesystemLoader(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeStyle(t, base, "brand", "body { color: teal; }")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	css, err := loader.LoadStyle("brand")
	if err != nil || css != "body { color: teal; }" {
		t.Errorf("LoadStyle(brand) = %q, %v", css, err)
	}
	if _, err := loader.LoadStyle("missing"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(missing) error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadStyle("../brand"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadStyle(../brand) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_ListStyles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if names, err := loader.ListStyles(); err != nil || len(names) != 0 {
		t.Errorf("ListStyles() without styles dir = %v, %v", names, err)
	}

	writeStyle(t, base, "b", "")
	writeStyle(t, base, "a", "")
	names, err := loader.ListStyles()
	if err != nil || len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ListStyles() = %v, %v, want [a b]", names, err)
	}
}

func TestFilesystemLoader_PathContainment(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "evil.css"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "evil.css"), filepath.Join(base, "styles", "evil.css")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadStyle("evil"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle(evil) error = %v, want ErrPathTraversal", err)
	}
}
