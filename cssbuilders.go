package mdpdf

import (
	"fmt"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// syntaxStyleName is the chroma style used for fenced code blocks.
const syntaxStyleName = "github"

// buildPageCSS generates the @page rule for the resolved geometry.
func buildPageCSS(page RenderPage) string {
	return fmt.Sprintf(`
/* Page geometry */
@page {
  size: %s %s;
  margin: %.1fmm;
}
`, page.Size, page.Orientation, page.MarginMM)
}

// buildPageBreaksCSS maps the page-break class set by the styling pass to
// print rules and keeps headings with the content that follows them.
func buildPageBreaksCSS() string {
	return fmt.Sprintf(`
/* Page breaks: prevent heading alone at page bottom */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
tr {
  break-inside: avoid;
  page-break-inside: avoid;
}
.%s {
  break-before: page;
  page-break-before: always;
}
`, pipeline.PageBreakClass)
}

var (
	syntaxCSSOnce sync.Once
	syntaxCSS     string
)

// buildSyntaxCSS returns the chroma stylesheet matching the class names
// emitted by the highlighter. Computed once per process.
func buildSyntaxCSS() string {
	syntaxCSSOnce.Do(func() {
		var b strings.Builder
		formatter := chromahtml.New(chromahtml.WithClasses(true))
		if err := formatter.WriteCSS(&b, styles.Get(syntaxStyleName)); err != nil {
			return
		}
		syntaxCSS = "\n/* Syntax highlighting */\n" + b.String()
	})
	return syntaxCSS
}

// buildCSS assembles the stylesheet for one conversion. Order matters: the
// theme comes first and user CSS last so it can override anything.
func buildCSS(theme string, page RenderPage, userCSS string) string {
	var b strings.Builder
	b.WriteString(theme)
	b.WriteString(buildPageCSS(page))
	b.WriteString(buildPageBreaksCSS())
	b.WriteString(buildSyntaxCSS())
	if strings.TrimSpace(userCSS) != "" {
		b.WriteString("\n/* User CSS */\n")
		b.WriteString(userCSS)
		b.WriteString("\n")
	}
	return b.String()
}
