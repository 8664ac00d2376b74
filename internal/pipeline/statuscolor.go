package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StatusCellClass is added to every colored status cell.
const StatusCellClass = "status-cell"

// CellColor is the styling applied to a status cell.
type CellColor struct {
	Keyword    string // canonical (upper-case) keyword
	Background string
	Text       string
}

// KeywordColors resolves cell text to a color. Implementations match the
// whole trimmed text case-insensitively and never by substring.
type KeywordColors interface {
	Lookup(text string) (CellColor, bool)
}

// ApplyStatusColors colors status cells in htmlContent. When enabled is false
// or colors is nil the input is returned unchanged.
func ApplyStatusColors(htmlContent string, colors KeywordColors, enabled bool) (string, error) {
	if !enabled || colors == nil {
		return htmlContent, nil
	}
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	ColorStatusCells(doc, colors)
	return renderHTML(doc, isFragment)
}

// ColorStatusCells processes every table under root and returns the number
// of cells colored. Nested tables are handled on their own: a table only
// owns the rows of its own thead/tbody/tfoot.
func ColorStatusCells(root *html.Node, colors KeywordColors) int {
	colored := 0
	walkElements(root, func(n *html.Node) bool {
		if n.DataAtom == atom.Table {
			colored += colorTable(n, colors)
		}
		return true
	})
	return colored
}

func colorTable(table *html.Node, colors KeywordColors) int {
	header, rows := splitRows(table)
	if header == nil {
		return 0
	}
	col := statusColumn(header)
	if col < 0 {
		return 0
	}

	colored := 0
	for _, row := range rows {
		cell := cellAt(row, col)
		if cell == nil || !isElement(cell, atom.Td) || hasClass(cell, StatusCellClass) {
			continue
		}
		keyword, ok := boldKeyword(cell)
		if !ok {
			continue
		}
		c, ok := colors.Lookup(keyword)
		if !ok {
			continue
		}
		paintCell(cell, c)
		colored++
	}
	return colored
}

// splitRows returns the header row and the data rows owned by table.
// The header is the first row of <thead>, else the first row made only of
// <th> cells.
func splitRows(table *html.Node) (*html.Node, []*html.Node) {
	var all []*html.Node
	var header *html.Node
	for _, sec := range elementChildren(table, atom.Thead, atom.Tbody, atom.Tfoot, atom.Tr) {
		if sec.DataAtom == atom.Tr {
			all = append(all, sec)
			continue
		}
		trs := elementChildren(sec, atom.Tr)
		if sec.DataAtom == atom.Thead && header == nil && len(trs) > 0 {
			header = trs[0]
		}
		all = append(all, trs...)
	}

	if header == nil {
		for _, tr := range all {
			cells := elementChildren(tr, atom.Th, atom.Td)
			if len(cells) > 0 && len(elementChildren(tr, atom.Th)) == len(cells) {
				header = tr
				break
			}
		}
	}
	if header == nil {
		return nil, nil
	}

	rows := make([]*html.Node, 0, len(all))
	for _, tr := range all {
		if tr != header && !isElement(tr.Parent, atom.Thead) {
			rows = append(rows, tr)
		}
	}
	return header, rows
}

// statusColumn returns the logical column index of the Status header cell,
// or -1.
func statusColumn(header *html.Node) int {
	pos := 0
	for _, cell := range elementChildren(header, atom.Th, atom.Td) {
		if IsStatusHeader(textContent(cell)) {
			return pos
		}
		pos += colspan(cell)
	}
	return -1
}

// cellAt returns the cell that starts at logical column col.
func cellAt(row *html.Node, col int) *html.Node {
	pos := 0
	for _, cell := range elementChildren(row, atom.Th, atom.Td) {
		if pos == col {
			return cell
		}
		if pos > col {
			return nil
		}
		pos += colspan(cell)
	}
	return nil
}

func colspan(cell *html.Node) int {
	v, ok := getAttr(cell, "colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// boldKeyword returns the text of the single bold element making up the
// whole cell. Any other visible content disqualifies the cell.
func boldKeyword(cell *html.Node) (string, bool) {
	var bold *html.Node
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		case c.Type == html.CommentNode:
		case bold == nil && (isElement(c, atom.Strong) || isElement(c, atom.B)):
			bold = c
		default:
			return "", false
		}
	}
	if bold == nil {
		return "", false
	}
	text := strings.TrimSpace(textContent(bold))
	return text, text != ""
}

func paintCell(cell *html.Node, c CellColor) {
	decl := fmt.Sprintf("background-color: %s; color: %s; font-weight: bold;", c.Background, c.Text)
	if existing, ok := getAttr(cell, "style"); ok && strings.TrimSpace(existing) != "" {
		decl = strings.TrimRight(strings.TrimSpace(existing), ";") + "; " + decl
	}
	setAttr(cell, "style", decl)
	addClass(cell, StatusCellClass)
	setAttr(cell, "data-status", c.Keyword)
}
