package main

// Notes:
// - Shared fixtures for the CLI tests. Not functions under test.

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// wideTableMD has a 4-column table (landscape) with bold status keywords.
const wideTableMD = `# Sprint

| Task | Owner | Status | Due |
|------|-------|--------|-----|
| API | Ana | **DONE** | 03-01 |
| UI | Bo | **BLOCKED** | 03-08 |

## Notes

Plain text.
`

// narrowMD has no table with 4 or more columns.
const narrowMD = `# Notes

| Key | Value |
|-----|-------|
| a | 1 |
`

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeMarkdown writes content to dir/name and returns the path.
func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// clearMDPDFEnv blanks every known MDPDF_* variable for the test.
// Callers cannot run in parallel.
func clearMDPDFEnv(t *testing.T) {
	t.Helper()
	for name := range knownEnvVars {
		t.Setenv(name, "")
	}
}
