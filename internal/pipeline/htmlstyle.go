package pipeline

import (
	"context"
	"fmt"
)

// StyleOptions selects the DOM transformations applied by Styler.
type StyleOptions struct {
	PageBreaks   bool          // break before every <h2> but the first
	StatusColors KeywordColors // nil disables status coloring
	SourceDir    string        // base for relative image paths; empty disables
}

// StyleStats reports what a Style call changed.
type StyleStats struct {
	PageBreaks    int
	ColoredCells  int
	RewrittenSrcs int
}

// HTMLStyler applies structural styling to a rendered HTML document.
type HTMLStyler interface {
	Style(ctx context.Context, htmlContent string, opts StyleOptions) (string, StyleStats, error)
}

// Styler runs all DOM transformations in one parse/render round trip.
// Running it twice on its own output changes nothing further.
type Styler struct{}

// Style parses htmlContent, applies the options and renders it back.
func (s *Styler) Style(ctx context.Context, htmlContent string, opts StyleOptions) (string, StyleStats, error) {
	var stats StyleStats
	if err := ctx.Err(); err != nil {
		return "", stats, err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", stats, fmt.Errorf("parsing HTML: %w", err)
	}

	if opts.PageBreaks {
		stats.PageBreaks = markPageBreaks(doc)
	}
	if opts.StatusColors != nil {
		stats.ColoredCells = ColorStatusCells(doc, opts.StatusColors)
	}
	stats.RewrittenSrcs = rewriteRelativePaths(doc, opts.SourceDir)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", stats, fmt.Errorf("rendering HTML: %w", err)
	}
	return out, stats, nil
}

var _ HTMLStyler = (*Styler)(nil)
