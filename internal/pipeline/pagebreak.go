package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageBreakClass marks an element that must start on a new page.
const PageBreakClass = "page-break"

// markPageBreaks tags every <h2> after the first one with PageBreakClass
// and returns how many were tagged. The first section shares the page with
// whatever precedes it (title, summary).
func markPageBreaks(doc *html.Node) int {
	seen, marked := 0, 0
	walkElements(doc, func(n *html.Node) bool {
		if n.DataAtom != atom.H2 {
			return true
		}
		seen++
		if seen > 1 {
			addClass(n, PageBreakClass)
			marked++
		}
		return false
	})
	return marked
}
