// Package pipeline implements the Markdown-to-styled-HTML stages.
//
// The stages are:
//   - Markdown preprocessing (line ending normalization, blank line compression)
//   - Table scanning over the goldmark AST, used to pick the page orientation
//   - Markdown to HTML conversion via goldmark
//   - A single DOM pass over the generated HTML (x/net/html) that marks page
//     breaks before second-level headings, colors status cells and rewrites
//     relative image paths
//   - CSS injection into the HTML head
//
// PDF generation is handled separately by the root mdpdf package, which
// owns the engines. This package knows nothing about pages or engines.
package pipeline
