package textenc

// Notes:
// - chardet is statistical; tests only use inputs long enough for a stable
//   Latin guess and assert on the decoded text, not the charset name.

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// ---------------------------------------------------------------------------
// TestSniff - Rejects binary content
// ---------------------------------------------------------------------------

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{"markdown", []byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"), false},
		{"png header", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"), true},
		{"pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"), true},
		{"zip", []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Sniff(tt.data)
			if tt.wantErr && !errors.Is(err, ErrNotText) {
				t.Errorf("Sniff() error = %v, want ErrNotText", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Sniff() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDecode - Transcoding to UTF-8
// ---------------------------------------------------------------------------

func TestDecode_UTF8Passthrough(t *testing.T) {
	t.Parallel()

	in := "# Café\n\n| Status |\n|---|\n| **DONE** |\n"
	got, cs := Decode([]byte(in))
	if got != in {
		t.Errorf("Decode() = %q, want unchanged", got)
	}
	if cs != UTF8 {
		t.Errorf("charset = %q, want %q", cs, UTF8)
	}
}

func TestDecode_StripsUTF8BOM(t *testing.T) {
	t.Parallel()

	got, _ := Decode(append([]byte{0xEF, 0xBB, 0xBF}, "# Title"...))
	if got != "# Title" {
		t.Errorf("Decode() = %q, want %q", got, "# Title")
	}
}

func TestDecode_Windows1252(t *testing.T) {
	t.Parallel()

	src := strings.Repeat("Le café du marché est très animé le matin. ", 20)
	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	if err != nil {
		t.Fatal(err)
	}

	got, cs := Decode([]byte(encoded))
	if cs == UTF8 {
		t.Fatal("Windows-1252 input must not be reported as UTF-8")
	}
	if !strings.Contains(got, "café du marché") {
		t.Errorf("Decode() lost accents: %q", got[:60])
	}
}
