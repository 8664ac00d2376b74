package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		contains []string
		excludes []string
	}{
		{
			name:     "gfm table with bold cell",
			markdown: "| Task | Status |\n|---|---|\n| Build | **DONE** |\n",
			contains: []string{"<table>", "<th>Status</th>", "<td><strong>DONE</strong></td>"},
		},
		{
			name:     "heading ids",
			markdown: "## Findings\n",
			contains: []string{`<h2 id="findings">Findings</h2>`},
		},
		{
			name:     "fenced code gets chroma classes",
			markdown: "```go\nfunc main() {}\n```\n",
			contains: []string{`class="chroma"`},
		},
		{
			name:     "raw html is dropped",
			markdown: "<script>alert(1)</script>\n\ntext\n",
			excludes: []string{"<script>"},
		},
		{
			name:     "strikethrough and task list",
			markdown: "~~old~~\n\n- [x] done\n",
			contains: []string{"<del>old</del>", `type="checkbox"`},
		},
	}

	c := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ToHTML(context.Background(), tt.markdown, "Report")
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			if !strings.HasPrefix(got, "<!DOCTYPE html>") || !strings.Contains(got, "<title>Report</title>") {
				t.Errorf("missing document shell:\n%s", got)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q", s)
				}
			}
		})
	}
}

func TestGoldmarkConverter_TitleEscaped(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "x", "<b>&</b>")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<title>&lt;b&gt;&amp;&lt;/b&gt;</title>") {
		t.Errorf("title not escaped:\n%s", got)
	}
}

func TestGoldmarkConverter_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
