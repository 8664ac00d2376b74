package mdpdf

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdpdf/internal/pipeline"
)

// CSS pixel to PDF point, as browsers print.
const pxToPt = 0.75

// lineSpacing is the line height as a multiple of the font size.
const lineSpacing = 1.4

// cellPadding is the inner padding of table cells in millimetres.
const cellPadding = 1.2

// textStyle describes how a run of text is drawn.
type textStyle struct {
	Family string  // core font: helvetica or courier
	Style  string  // "", "B", "I", "BI"
	SizePx float64 // CSS pixels, converted on use
	Color  rgb
}

func (s textStyle) withStyle(add string) textStyle {
	if !strings.Contains(s.Style, add) {
		s.Style += add
	}
	if s.Style == "IB" {
		s.Style = "BI"
	}
	return s
}

// Theme values mirror styles/report.css.
var (
	bodyColor     = rgb{26, 26, 26}
	linkColor     = rgb{41, 128, 185}
	ruleColor     = rgb{221, 221, 221}
	borderColor   = rgb{204, 204, 204}
	headerFill    = rgb{44, 62, 80}
	stripeFill    = rgb{248, 249, 250}
	codeFill      = rgb{245, 245, 245}
	quoteBarColor = rgb{52, 152, 219}
	white         = rgb{255, 255, 255}

	normalStyle = textStyle{Family: "helvetica", SizePx: 9, Color: bodyColor}
	tableStyle  = textStyle{Family: "helvetica", SizePx: 8, Color: bodyColor}
	codeStyle   = textStyle{Family: "courier", SizePx: 8, Color: bodyColor}

	headingStyles = map[atom.Atom]textStyle{
		atom.H1: {Family: "helvetica", Style: "B", SizePx: 20, Color: bodyColor},
		atom.H2: {Family: "helvetica", Style: "B", SizePx: 15, Color: rgb{44, 62, 80}},
		atom.H3: {Family: "helvetica", Style: "B", SizePx: 12, Color: rgb{52, 73, 94}},
		atom.H4: {Family: "helvetica", Style: "B", SizePx: 10, Color: rgb{85, 85, 85}},
		atom.H5: {Family: "helvetica", Style: "B", SizePx: 9, Color: rgb{85, 85, 85}},
		atom.H6: {Family: "helvetica", Style: "B", SizePx: 9, Color: rgb{85, 85, 85}},
	}
)

// fpdfEngine is a pure Go block renderer over the styled DOM. It honours
// the page-break class and status cell colors but none of the CSS beyond
// that; layout is a simple top-to-bottom flow.
type fpdfEngine struct{}

func newFPDFEngine() *fpdfEngine { return &fpdfEngine{} }

func (e *fpdfEngine) Name() string { return EngineFPDF }

// Available always succeeds: the engine is compiled in.
func (e *fpdfEngine) Available() error { return nil }

func (e *fpdfEngine) Close() error { return nil }

// Render lays htmlContent out on pages of the given geometry.
func (e *fpdfEngine) Render(ctx context.Context, htmlContent string, page RenderPage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %v", ErrPDFGeneration, err)
	}

	w := newFPDFWriter(page)
	if title := findElement(doc, atom.Title); title != nil {
		w.pdf.SetTitle(strings.TrimSpace(nodeText(title)), true)
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		body = doc
	}
	w.blocks(ctx, body)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return buf.Bytes(), nil
}

// fpdfWriter holds layout state for one document.
type fpdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	margin float64
	left   float64 // current left edge, grows with list and quote nesting
}

func newFPDFWriter(page RenderPage) *fpdfWriter {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P", // width and height are already oriented
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.WidthMM, Ht: page.HeightMM},
	})
	pdf.SetMargins(page.MarginMM, page.MarginMM, page.MarginMM)
	pdf.SetAutoPageBreak(true, page.MarginMM)
	pdf.SetCellMargin(0)
	pdf.SetCreator("go-mdpdf", true)
	pdf.AddPage()

	return &fpdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		margin: page.MarginMM,
		left:   page.MarginMM,
	}
}

// lineHeight returns the line height in millimetres for a style.
func lineHeight(s textStyle) float64 {
	return s.SizePx * pxToPt * lineSpacing * mmPerInch / 72
}

func (w *fpdfWriter) setStyle(s textStyle) {
	w.pdf.SetFont(s.Family, s.Style, s.SizePx*pxToPt)
	w.pdf.SetTextColor(s.Color.R, s.Color.G, s.Color.B)
}

// contentWidth is the usable width at the current indentation.
func (w *fpdfWriter) contentWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	return pageW - w.left - w.margin
}

func (w *fpdfWriter) setLeft(x float64) {
	w.left = x
	w.pdf.SetLeftMargin(x)
	w.pdf.SetX(x)
}

// atPageTop reports whether nothing has been drawn on the current page yet.
func (w *fpdfWriter) atPageTop() bool {
	return w.pdf.GetY() <= w.margin+0.01
}

// ensureSpace starts a new page when fewer than h millimetres remain.
func (w *fpdfWriter) ensureSpace(h float64) {
	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+h > pageH-w.margin && !w.atPageTop() {
		w.pdf.AddPage()
		w.pdf.SetX(w.left)
	}
}

// blocks renders the children of n as block content. Loose inline content
// between blocks is gathered into anonymous paragraphs.
func (w *fpdfWriter) blocks(ctx context.Context, n *html.Node) {
	var inline []*html.Node
	flush := func() {
		if len(inline) > 0 {
			w.paragraph(inline, normalStyle)
			inline = nil
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if ctx.Err() != nil || w.pdf.Err() {
			return
		}
		if c.Type == html.TextNode {
			if strings.TrimSpace(c.Data) != "" {
				inline = append(inline, c)
			}
			continue
		}
		if c.Type != html.ElementNode {
			continue
		}
		if !isBlock(c.DataAtom) {
			inline = append(inline, c)
			continue
		}
		flush()
		w.block(ctx, c)
	}
	flush()
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Ul, atom.Ol, atom.Pre, atom.Blockquote, atom.Table,
		atom.Hr, atom.Div, atom.Section, atom.Article, atom.Main, atom.Header,
		atom.Footer, atom.Nav, atom.Aside, atom.Figure, atom.Dl, atom.Li,
		atom.Style, atom.Script:
		return true
	}
	return false
}

func (w *fpdfWriter) block(ctx context.Context, n *html.Node) {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.heading(n)
	case atom.P:
		if img := soleImage(n); img != nil {
			w.image(img)
			return
		}
		w.paragraph(childNodes(n), normalStyle)
	case atom.Ul:
		w.list(ctx, n, false)
	case atom.Ol:
		w.list(ctx, n, true)
	case atom.Pre:
		w.codeBlock(n)
	case atom.Blockquote:
		w.blockquote(ctx, n)
	case atom.Table:
		w.table(n)
	case atom.Hr:
		w.rule()
	case atom.Style, atom.Script:
	default:
		w.blocks(ctx, n)
	}
}

func (w *fpdfWriter) heading(n *html.Node) {
	style := headingStyles[n.DataAtom]
	lh := lineHeight(style)

	if hasClassName(n, pipeline.PageBreakClass) && !w.atPageTop() {
		w.pdf.AddPage()
	} else if !w.atPageTop() {
		w.pdf.Ln(lh * 0.6)
	}
	w.ensureSpace(lh * 3) // keep the heading with what follows

	w.pdf.SetX(w.left)
	w.setStyle(style)
	w.pdf.MultiCell(w.contentWidth(), lh, w.tr(strings.TrimSpace(collapseSpace(nodeText(n)))), "", "L", false)

	if n.DataAtom == atom.H1 || n.DataAtom == atom.H2 {
		y := w.pdf.GetY() + 0.5
		width := 0.2
		if n.DataAtom == atom.H1 {
			width = 0.5
		}
		w.pdf.SetDrawColor(ruleColor.R, ruleColor.G, ruleColor.B)
		w.pdf.SetLineWidth(width)
		w.pdf.Line(w.left, y, w.left+w.contentWidth(), y)
		w.pdf.SetLineWidth(0.2)
		w.pdf.SetY(y + 1)
	}
	w.pdf.Ln(lh * 0.3)
}

// run is a piece of inline text with its style.
type run struct {
	text  string
	style textStyle
	link  string
}

// paragraph flows inline nodes from the current position.
func (w *fpdfWriter) paragraph(nodes []*html.Node, base textStyle) {
	var runs []run
	for _, n := range nodes {
		collectRuns(n, base, "", &runs)
	}
	runs = trimRuns(runs)
	if len(runs) == 0 {
		return
	}

	lh := lineHeight(base)
	for _, r := range runs {
		w.setStyle(r.style)
		text := w.tr(r.text)
		if r.link != "" {
			w.pdf.WriteLinkString(lh, text, r.link)
		} else {
			w.pdf.Write(lh, text)
		}
	}
	w.pdf.Ln(lh)
	w.pdf.Ln(lh * 0.35)
	w.pdf.SetX(w.left)
}

// collectRuns flattens inline markup into styled runs.
func collectRuns(n *html.Node, style textStyle, link string, runs *[]run) {
	switch n.Type {
	case html.TextNode:
		if t := collapseSpace(n.Data); t != "" {
			*runs = append(*runs, run{text: t, style: style, link: link})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		style = style.withStyle("B")
	case atom.Em, atom.I:
		style = style.withStyle("I")
	case atom.Code, atom.Kbd, atom.Samp:
		style.Family = "courier"
	case atom.A:
		if href, ok := attrValue(n, "href"); ok && !strings.HasPrefix(href, "#") {
			link = href
			style.Color = linkColor
		}
	case atom.Br:
		*runs = append(*runs, run{text: "\n", style: style})
		return
	case atom.Input:
		mark := "[ ] "
		if _, checked := attrValue(n, "checked"); checked {
			mark = "[x] "
		}
		*runs = append(*runs, run{text: mark, style: style})
		return
	case atom.Img:
		if alt, ok := attrValue(n, "alt"); ok && alt != "" {
			*runs = append(*runs, run{text: "[" + alt + "]", style: style.withStyle("I")})
		}
		return
	case atom.Style, atom.Script:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectRuns(c, style, link, runs)
	}
}

// trimRuns drops leading and trailing whitespace of the paragraph.
func trimRuns(runs []run) []run {
	for len(runs) > 0 {
		runs[0].text = strings.TrimLeft(runs[0].text, " ")
		if runs[0].text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].text = strings.TrimRight(runs[last].text, " ")
		if runs[last].text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}

const listIndent = 5.0

func (w *fpdfWriter) list(ctx context.Context, n *html.Node, ordered bool) {
	prevLeft := w.left
	lh := lineHeight(normalStyle)
	counter := 1
	if start, ok := attrValue(n, "start"); ok {
		if v, err := strconv.Atoi(start); err == nil {
			counter = v
		}
	}

	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.DataAtom != atom.Li {
			continue
		}
		marker := "•"
		if ordered {
			marker = strconv.Itoa(counter) + "."
			counter++
		}

		w.ensureSpace(lh)
		w.setLeft(prevLeft)
		w.setStyle(normalStyle)
		w.pdf.CellFormat(listIndent, lh, w.tr(marker), "", 0, "L", false, 0, "")
		w.left = prevLeft + listIndent
		w.pdf.SetLeftMargin(w.left)

		w.listItem(ctx, li)
	}
	w.setLeft(prevLeft)
}

// listItem renders the content of an <li>. The first inline run starts next
// to the marker.
func (w *fpdfWriter) listItem(ctx context.Context, li *html.Node) {
	var inline []*html.Node
	flush := func() {
		if len(inline) > 0 {
			w.paragraph(inline, normalStyle)
			inline = nil
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlock(c.DataAtom) {
			flush()
			if c.DataAtom == atom.P {
				w.paragraph(childNodes(c), normalStyle)
				continue
			}
			w.block(ctx, c)
			continue
		}
		inline = append(inline, c)
	}
	flush()
}

func (w *fpdfWriter) codeBlock(n *html.Node) {
	lh := lineHeight(codeStyle)
	w.setStyle(codeStyle)
	w.pdf.SetFillColor(codeFill.R, codeFill.G, codeFill.B)

	text := strings.TrimRight(nodeText(n), "\n")
	width := w.contentWidth()
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		for _, part := range w.wrap(w.tr(line), width-2*cellPadding) {
			w.ensureSpace(lh)
			w.pdf.SetX(w.left)
			w.pdf.CellFormat(cellPadding, lh, "", "", 0, "L", true, 0, "")
			w.pdf.CellFormat(width-cellPadding, lh, part, "", 1, "L", true, 0, "")
		}
	}
	w.pdf.Ln(lh * 0.5)
}

func (w *fpdfWriter) blockquote(ctx context.Context, n *html.Node) {
	prevLeft := w.left
	startPage, startY := w.pdf.PageNo(), w.pdf.GetY()

	w.setLeft(prevLeft + listIndent)
	w.blocks(ctx, n)
	w.setLeft(prevLeft)

	top := startY
	if w.pdf.PageNo() != startPage {
		top = w.margin
	}
	w.pdf.SetDrawColor(quoteBarColor.R, quoteBarColor.G, quoteBarColor.B)
	w.pdf.SetLineWidth(0.8)
	w.pdf.Line(prevLeft+1, top, prevLeft+1, w.pdf.GetY())
	w.pdf.SetLineWidth(0.2)
}

func (w *fpdfWriter) rule() {
	y := w.pdf.GetY() + 2
	w.pdf.SetDrawColor(ruleColor.R, ruleColor.G, ruleColor.B)
	w.pdf.Line(w.left, y, w.left+w.contentWidth(), y)
	w.pdf.SetY(y + 2)
	w.pdf.SetX(w.left)
}

// tableCell is one resolved cell of a table row.
type tableCell struct {
	text   string
	header bool
	bold   bool
	align  string
	fill   *rgb
	color  *rgb
}

func (w *fpdfWriter) table(t *html.Node) {
	rows := tableGrid(t)
	if len(rows) == 0 {
		return
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}

	widths := w.columnWidths(rows, cols)
	var header []tableCell
	if allHeader(rows[0]) {
		header = rows[0]
	}

	w.pdf.Ln(1)
	for i, r := range rows {
		// Data rows alternate like tr:nth-child(even) in the theme.
		stripe := i > 0 && (i%2 == 0) == (header != nil)
		repeat := header
		if i == 0 {
			repeat = nil
		}
		w.tableRow(r, widths, repeat, stripe)
	}
	w.pdf.Ln(lineHeight(normalStyle) * 0.5)
	w.pdf.SetX(w.left)
}

// columnWidths shares the content width between columns in proportion to
// their widest text, with a floor so short columns stay legible.
func (w *fpdfWriter) columnWidths(rows [][]tableCell, cols int) []float64 {
	total := w.contentWidth()
	natural := make([]float64, cols)
	for _, r := range rows {
		for i, c := range r {
			style := tableStyle
			if c.header || c.bold {
				style = style.withStyle("B")
			}
			w.setStyle(style)
			natural[i] = max(natural[i], w.pdf.GetStringWidth(w.tr(c.text))+2*cellPadding)
		}
	}

	floor := total / float64(cols) * 0.5
	sum := 0.0
	for i := range natural {
		natural[i] = min(max(natural[i], floor), total)
		sum += natural[i]
	}
	for i := range natural {
		natural[i] = natural[i] / sum * total
	}
	return natural
}

// tableRow draws one row. When the row does not fit, a new page is started
// and repeat (the header row, if any) is drawn first.
func (w *fpdfWriter) tableRow(cells []tableCell, widths []float64, repeat []tableCell, stripe bool) {
	lh := lineHeight(tableStyle)

	lines := make([][]string, len(widths))
	height := lh
	for i := range widths {
		if i >= len(cells) {
			continue
		}
		w.setStyle(cellStyle(cells[i]))
		lines[i] = w.wrap(w.tr(cells[i].text), widths[i]-2*cellPadding)
		height = max(height, float64(len(lines[i]))*lh)
	}
	height += 2 * cellPadding

	_, pageH := w.pdf.GetPageSize()
	if w.pdf.GetY()+height > pageH-w.margin && !w.atPageTop() {
		w.pdf.AddPage()
		if repeat != nil {
			w.tableRow(repeat, widths, nil, false)
		}
	}

	x0, y0 := w.left, w.pdf.GetY()
	x := x0
	for i, width := range widths {
		var c tableCell
		if i < len(cells) {
			c = cells[i]
		}

		fill := white
		switch {
		case c.fill != nil:
			fill = *c.fill
		case c.header:
			fill = headerFill
		case stripe:
			fill = stripeFill
		}
		w.pdf.SetFillColor(fill.R, fill.G, fill.B)
		w.pdf.SetDrawColor(borderColor.R, borderColor.G, borderColor.B)
		w.pdf.Rect(x, y0, width, height, "FD")

		style := cellStyle(c)
		w.setStyle(style)
		for j, line := range lines[i] {
			w.pdf.SetXY(x+cellPadding, y0+cellPadding+float64(j)*lh)
			w.pdf.CellFormat(width-2*cellPadding, lh, line, "", 0, c.align, false, 0, "")
		}
		x += width
	}
	w.pdf.SetXY(x0, y0+height)
}

func cellStyle(c tableCell) textStyle {
	s := tableStyle
	switch {
	case c.header:
		s = s.withStyle("B")
		s.Color = white
	case c.bold:
		s = s.withStyle("B")
	}
	if c.color != nil {
		s.Color = *c.color
	}
	return s
}

// wrap breaks already translated text into lines no wider than width using
// the current font. Words longer than a line are split by character.
func (w *fpdfWriter) wrap(text string, width float64) []string {
	if text == "" {
		return []string{""}
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(text) {
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if w.pdf.GetStringWidth(candidate) <= width {
			cur = candidate
			continue
		}
		if cur != "" {
			lines = append(lines, cur)
			cur = ""
		}
		for w.pdf.GetStringWidth(word) > width && len(word) > 1 {
			cut := len(word) - 1
			for cut > 1 && w.pdf.GetStringWidth(word[:cut]) > width {
				cut--
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		cur = word
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

// tableGrid reads the rows owned by t (not by nested tables).
func tableGrid(t *html.Node) [][]tableCell {
	var rows [][]tableCell
	addRow := func(tr *html.Node) {
		var row []tableCell
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
				continue
			}
			cell := readCell(c)
			span := 1
			if v, ok := attrValue(c, "colspan"); ok {
				if n, err := strconv.Atoi(v); err == nil && n > 1 {
					span = n
				}
			}
			row = append(row, cell)
			for range span - 1 {
				row = append(row, tableCell{header: cell.header, fill: cell.fill})
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	for c := t.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Tr:
			addRow(c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.DataAtom == atom.Tr {
					addRow(tr)
				}
			}
		}
	}
	return rows
}

func readCell(n *html.Node) tableCell {
	c := tableCell{
		text:   collapseSpace(nodeText(n)),
		header: n.DataAtom == atom.Th,
		align:  "L",
	}
	if a, ok := attrValue(n, "align"); ok {
		c.align = alignCode(a)
	}
	style, _ := attrValue(n, "style")
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop, val = strings.ToLower(strings.TrimSpace(prop)), strings.TrimSpace(val)
		switch prop {
		case "background-color", "background":
			if col, ok := cssColorRGB(val); ok {
				c.fill = &col
			}
		case "color":
			if col, ok := cssColorRGB(val); ok {
				c.color = &col
			}
		case "font-weight":
			c.bold = val == "bold" || val == "700"
		case "text-align":
			c.align = alignCode(val)
		}
	}
	if hasClassName(n, pipeline.StatusCellClass) {
		c.bold = true
	}
	return c
}

func alignCode(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center":
		return "C"
	case "right":
		return "R"
	default:
		return "L"
	}
}

func allHeader(row []tableCell) bool {
	for _, c := range row {
		if !c.header {
			return false
		}
	}
	return len(row) > 0
}

// localImagePath returns the filesystem path of a file:// image source.
func localImagePath(src string) (string, bool) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	p := filepath.FromSlash(u.Path)
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return "", false
	}
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, true
}

// image draws a local image scaled to the content width when needed.
// Remote and missing images are skipped.
func (w *fpdfWriter) image(n *html.Node) {
	src, _ := attrValue(n, "src")
	path, ok := localImagePath(src)
	if !ok {
		return
	}
	opts := fpdf.ImageOptions{ReadDpi: true}
	info := w.pdf.RegisterImageOptions(path, opts)
	if w.pdf.Err() || info == nil {
		w.pdf.ClearError()
		return
	}
	width, height := info.Extent()
	if maxW := w.contentWidth(); width > maxW {
		height = height * maxW / width
		width = maxW
	}
	w.ensureSpace(height)
	w.pdf.ImageOptions(path, w.left, w.pdf.GetY(), width, height, true, opts, 0, "")
	w.pdf.SetX(w.left)
}

// ---------------------------------------------------------------------------
// DOM helpers
// ---------------------------------------------------------------------------

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// soleImage returns the <img> when it is the only content of n.
func soleImage(n *html.Node) *html.Node {
	var img *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
		case c.Type == html.ElementNode && c.DataAtom == atom.Img && img == nil:
			img = c
		default:
			return nil
		}
	}
	return img
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			b.WriteString("\n")
			continue
		}
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// collapseSpace folds whitespace runs into one space, keeping a single
// leading or trailing space so adjacent runs stay separated.
func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	lead := strings.IndexFunc(s[:1], isSpaceRune) == 0
	trail := strings.LastIndexFunc(s, isSpaceRune) == len(s)-1
	out := strings.Join(strings.Fields(s), " ")
	if out == "" {
		return " "
	}
	if lead {
		out = " " + out
	}
	if trail {
		out += " "
	}
	return out
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == '\f'
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClassName(n *html.Node, class string) bool {
	v, _ := attrValue(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

var _ Engine = (*fpdfEngine)(nil)
