// Package mdpdf converts Markdown documents to styled PDFs.
//
// # Quick Start
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	doc, err := mdpdf.LoadDocument("audit.md", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := conv.ConvertFile(ctx, doc, mdpdf.Input{StatusColors: true})
//
// ConvertFile writes doc.Output (audit.pdf here) through a temporary file
// and a rename, so a failed run never leaves a partial PDF behind. Convert
// does the same work in memory and returns the bytes.
//
// # Conversion Pipeline
//
//  1. Loading: binary input is rejected, legacy encodings are decoded.
//  2. Table scan: any table with 4 or more columns selects landscape
//     unless the orientation is forced.
//  3. HTML: goldmark (GFM, highlighting), then one DOM pass that adds page
//     breaks before every h2 but the first and, when enabled, colors bold
//     keywords in Status columns.
//  4. PDF: the first available engine renders the document. Chrome gives
//     the best CSS fidelity; fpdf is a pure Go fallback. An engine that is
//     merely missing is skipped, an engine that fails is not retried.
//
// # Status colors
//
// Only cells of a column headed "Status" whose whole content is one bold
// keyword are colored. The palette starts from DefaultColors; overrides
// replace entries with the same keyword:
//
//	overrides, err := mdpdf.ParseColorOverrides(`{"BLOCKED": "#f8d7da:#721c24"}`)
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown:     content,
//	    StatusColors: true,
//	    Colors:       overrides,
//	})
//
// # Browser Requirements
//
// The chrome engine uses an installed Chrome or Chromium, found on the usual
// paths or through ROD_BROWSER_BIN. It never downloads a browser. Set
// ROD_NO_SANDBOX=1 in containers.
package mdpdf
