package pipeline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// TableInfo describes one well-formed table found in a Markdown document.
type TableInfo struct {
	Columns   int      // cells in the header row
	Header    []string // header cell text, inline markup removed
	Rows      int      // data rows
	HasStatus bool     // a header cell reads "Status"
}

// tableParser only knows GFM tables, so nothing else in the document can
// change what counts as a table.
var tableParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

// ScanTables returns every table in markdown, in document order.
//
// A table is a header row immediately followed by a delimiter row with the
// same number of cells. Rows that merely contain pipes, or a header whose
// cell count differs from the delimiter row, are not tables. Tables inside
// blockquotes and list items count like any other, and a table written
// directly under another one is still a table of its own.
func ScanTables(markdown string) []TableInfo {
	src := []byte(separateAdjacentTables(markdown))
	doc := tableParser.Parse(text.NewReader(src))

	var tables []TableInfo
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		t, ok := n.(*east.Table)
		if !ok {
			return ast.WalkContinue, nil
		}

		info := TableInfo{Columns: len(t.Alignments)}
		for row := t.FirstChild(); row != nil; row = row.NextSibling() {
			if _, isHeader := row.(*east.TableHeader); !isHeader {
				info.Rows++
				continue
			}
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				h := inlineText(cell, src)
				info.Header = append(info.Header, h)
				if IsStatusHeader(h) {
					info.HasStatus = true
				}
			}
		}
		tables = append(tables, info)
		return ast.WalkSkipChildren, nil
	})

	return tables
}

// separateAdjacentTables inserts an empty line before every header row that
// directly follows another pipe row. GFM would otherwise read that header and
// its delimiter row as body rows of the table above.
func separateAdjacentTables(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if i > 0 && i+1 < len(lines) && startsAdjacentTable(lines[i-1], line, lines[i+1]) {
			prefix, _ := splitContainer(line)
			out = append(out, strings.TrimRight(prefix, " \t"))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// startsAdjacentTable reports whether header and delim open a table while
// prev is a pipe row that would absorb them.
func startsAdjacentTable(prev, header, delim string) bool {
	_, p := splitContainer(prev)
	_, h := splitContainer(header)
	_, d := splitContainer(delim)
	if !strings.Contains(p, "|") || delimiterCells(h) > 0 {
		return false
	}
	n := delimiterCells(d)
	return n > 0 && len(rowCells(h)) == n
}

// splitContainer separates the blockquote markers and indentation in front
// of line from its content.
func splitContainer(line string) (prefix, rest string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '>') {
		i++
	}
	return line[:i], line[i:]
}

// rowCells splits a pipe row into cells. Escaped pipes stay in the cell.
func rowCells(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, "\\|") {
		row = row[:len(row)-1]
	}

	var cells []string
	start := 0
	for i := 0; i < len(row); i++ {
		switch row[i] {
		case '\\':
			i++
		case '|':
			cells = append(cells, row[start:i])
			start = i + 1
		}
	}
	return append(cells, row[start:])
}

// delimiterCells returns the cell count of a delimiter row such as
// "|:---|--:|", or 0 when row is not one.
func delimiterCells(row string) int {
	if !strings.Contains(row, "|") {
		return 0
	}
	cells := rowCells(row)
	for _, c := range cells {
		c = strings.TrimSpace(c)
		c = strings.TrimPrefix(c, ":")
		c = strings.TrimSuffix(c, ":")
		if c == "" || strings.Trim(c, "-") != "" {
			return 0
		}
	}
	return len(cells)
}

// IsStatusHeader reports whether header text names the status column:
// "status" in any case, surrounding whitespace ignored.
func IsStatusHeader(s string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(s), " "), "status")
}

// inlineText concatenates the literal text under n, dropping emphasis,
// code span and link markup.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
