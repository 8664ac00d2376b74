//go:build bench

package mdpdf

import (
	"testing"
)

// BenchmarkBuildCSS benchmarks stylesheet assembly per conversion.
func BenchmarkBuildCSS(b *testing.B) {
	pages := []struct {
		name string
		page RenderPage
	}{
		{"a4_portrait", newRenderPage(DefaultPageSettings(), OrientationPortrait)},
		{"letter_landscape", newRenderPage(&PageSettings{Size: PageSizeLetter, Margin: 2}, OrientationLandscape)},
	}

	theme := "body { font-family: sans-serif; }\n"
	for _, p := range pages {
		b.Run(p.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := buildCSS(theme, p.page, "h1 { color: navy; }")
				_ = result
			}
		})
	}
}

// BenchmarkDetectOrientation benchmarks the table heuristic on a report
// with several tables.
func BenchmarkDetectOrientation(b *testing.B) {
	md := ""
	for i := 0; i < 20; i++ {
		md += "## Section\n\n| Item | Status |\n|---|---|\n| a | **DONE** |\n\n"
	}
	md += "| A | B | C | D |\n|---|---|---|---|\n| 1 | 2 | 3 | 4 |\n"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DetectOrientation(md)
	}
}
