package mdpdf

// Notes:
// - Output is checked through InspectPDF (pdfcpu): page count and page
//   geometry are the observable contract. Text placement is not asserted.
// - Images: only the "missing file is skipped" path is tested; drawing a real
//   PNG would need a fixture for little extra confidence.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const fpdfSample = `<!DOCTYPE html>
<html><head><title>Audit</title><style>body{}</style></head><body>
<h1>Audit report</h1>
<p>Intro with <strong>bold</strong>, <em>italic</em>, <code>code</code> and a <a href="https://example.com">link</a>.</p>
<ul><li>first</li><li><input type="checkbox" checked disabled> done item</li></ul>
<ol><li>one</li><li>two<ul><li>nested</li></ul></li></ol>
<blockquote><p>Quoted text</p></blockquote>
<pre class="chroma"><code>func main() {}
</code></pre>
<hr>
<h2>Findings</h2>
<table><thead><tr><th>Item</th><th align="center">Status</th></tr></thead>
<tbody>
<tr><td>Login</td><td class="status-cell" style="background-color: #d4edda; color: #155724; font-weight: bold;"><strong>DONE</strong></td></tr>
<tr><td>Export → CSV “quoted”</td><td><strong>TODO</strong></td></tr>
</tbody></table>
<p><img src="file:///does/not/exist.png" alt="chart"></p>
</body></html>`

func renderFPDF(t *testing.T, htmlContent string, page RenderPage) PDFInfo {
	t.Helper()
	out, err := newFPDFEngine().Render(context.Background(), htmlContent, page)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	info, err := InspectPDF(out)
	if err != nil {
		t.Fatalf("InspectPDF() on fpdf output: %v", err)
	}
	return info
}

// ---------------------------------------------------------------------------
// TestFPDFEngine_Render - Valid PDF with the resolved geometry
// ---------------------------------------------------------------------------

func TestFPDFEngine_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		page          RenderPage
		wantLandscape bool
	}{
		{"a4 portrait", newRenderPage(DefaultPageSettings(), OrientationPortrait), false},
		{"a4 landscape", newRenderPage(DefaultPageSettings(), OrientationLandscape), true},
		{"letter landscape", newRenderPage(&PageSettings{Size: PageSizeLetter, Margin: 1}, OrientationLandscape), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := renderFPDF(t, fpdfSample, tt.page)
			if info.Pages < 1 {
				t.Errorf("Pages = %d", info.Pages)
			}
			if info.Landscape() != tt.wantLandscape {
				t.Errorf("Landscape() = %v (%.0fx%.0f pt), want %v", info.Landscape(), info.WidthPt, info.HeightPt, tt.wantLandscape)
			}
		})
	}
}

func TestFPDFEngine_PageBreakClass(t *testing.T) {
	t.Parallel()

	page := newRenderPage(DefaultPageSettings(), OrientationPortrait)
	doc := `<html><body>
<h1>Title</h1>
<h2>First</h2><p>a</p>
<h2 class="page-break">Second</h2><p>b</p>
<h2 class="page-break">Third</h2><p>c</p>
</body></html>`

	if got := renderFPDF(t, doc, page).Pages; got != 3 {
		t.Errorf("Pages = %d, want 3", got)
	}

	// A break at the top of a fresh page adds nothing.
	doc = `<html><body><h2 class="page-break">Only</h2><p>x</p></body></html>`
	if got := renderFPDF(t, doc, page).Pages; got != 1 {
		t.Errorf("Pages = %d, want 1", got)
	}
}

func TestFPDFEngine_LongTableSpansPages(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body><table><thead><tr><th>#</th><th>Description</th><th>Status</th></tr></thead><tbody>")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td><strong>TODO</strong></td></tr>", i, strings.Repeat("word ", 12))
	}
	b.WriteString("</tbody></table></body></html>")

	info := renderFPDF(t, b.String(), newRenderPage(DefaultPageSettings(), OrientationPortrait))
	if info.Pages < 2 {
		t.Errorf("Pages = %d, want more than 1", info.Pages)
	}
}

func TestFPDFEngine_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newFPDFEngine().Render(ctx, fpdfSample, newRenderPage(DefaultPageSettings(), OrientationPortrait))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

func TestFPDFEngine_AlwaysAvailable(t *testing.T) {
	t.Parallel()

	e := newFPDFEngine()
	if err := e.Available(); err != nil {
		t.Errorf("Available() = %v", err)
	}
	if e.Name() != EngineFPDF {
		t.Errorf("Name() = %q", e.Name())
	}
}

// ---------------------------------------------------------------------------
// TestTableGrid / TestReadCell - DOM reading
// ---------------------------------------------------------------------------

func parseTable(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + src + "</body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	table := findElement(doc, atom.Table)
	if table == nil {
		t.Fatal("no table parsed")
	}
	return table
}

func TestTableGrid(t *testing.T) {
	t.Parallel()

	table := parseTable(t, `<table>
<thead><tr><th>A</th><th colspan="2">B</th></tr></thead>
<tbody><tr><td>1</td><td>2</td><td>3<table><tr><td>inner</td></tr></table></td></tr></tbody>
</table>`)

	rows := tableGrid(table)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if len(rows[0]) != 3 || !allHeader(rows[0]) {
		t.Errorf("header row = %+v, want 3 header cells", rows[0])
	}
	if len(rows[1]) != 3 || allHeader(rows[1]) {
		t.Errorf("body row = %+v, want 3 data cells", rows[1])
	}
}

func TestReadCell(t *testing.T) {
	t.Parallel()

	table := parseTable(t, `<table><tr>
<td class="status-cell" style="background-color: #d4edda; color: rgb(21, 87, 36)"><strong> DONE </strong></td>
<td align="right" style="background: transparent">9</td>
<td style="text-align: center; font-weight: 700">x</td>
</tr></table>`)

	cells := tableGrid(table)[0]

	status := cells[0]
	if strings.TrimSpace(status.text) != "DONE" || !status.bold {
		t.Errorf("status cell = %+v", status)
	}
	if status.fill == nil || *status.fill != (rgb{212, 237, 218}) {
		t.Errorf("fill = %v", status.fill)
	}
	if status.color == nil || *status.color != (rgb{21, 87, 36}) {
		t.Errorf("color = %v", status.color)
	}

	if cells[1].align != "R" || cells[1].fill != nil {
		t.Errorf("right cell = %+v", cells[1])
	}
	if cells[2].align != "C" || !cells[2].bold {
		t.Errorf("center cell = %+v", cells[2])
	}
}

// ---------------------------------------------------------------------------
// TestCollapseSpace / TestWrap - Text helpers
// ---------------------------------------------------------------------------

func TestCollapseSpace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a  b", "a b"},
		{"\n a\tb \n", " a b "},
		{"   ", " "},
	}
	for _, tt := range tests {
		if got := collapseSpace(tt.in); got != tt.want {
			t.Errorf("collapseSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFPDFWriter_Wrap(t *testing.T) {
	t.Parallel()

	w := newFPDFWriter(newRenderPage(DefaultPageSettings(), OrientationPortrait))
	w.setStyle(tableStyle)

	lines := w.wrap(strings.Repeat("lorem ipsum ", 30), 40)
	if len(lines) < 2 {
		t.Fatalf("wrap() = %d lines, want several", len(lines))
	}
	for _, l := range lines {
		if w.pdf.GetStringWidth(l) > 40 {
			t.Errorf("line %q wider than 40mm", l)
		}
	}

	long := w.wrap(strings.Repeat("x", 400), 20)
	if len(long) < 2 {
		t.Errorf("unbroken word not split: %d lines", len(long))
	}

	if got := w.wrap("", 20); len(got) != 1 || got[0] != "" {
		t.Errorf("wrap(\"\") = %q", got)
	}
}
