package mdpdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/textenc"
)

// maxMarkdownSize bounds how much of a source file is read.
const maxMarkdownSize = 32 << 20

// Document is a Markdown source file and the PDF path it will produce.
// The text is read on the first call to Text and cached, errors included.
type Document struct {
	Source string
	Output string

	once    sync.Once
	text    string
	charset string
	err     error
}

// LoadDocument checks that src is a readable regular file and resolves the
// output path. An empty dst becomes src with its extension replaced by .pdf.
func LoadDocument(src, dst string) (*Document, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: no input file given", ErrReadMarkdown)
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrReadMarkdown, src)
	}
	if info.Size() > maxMarkdownSize {
		return nil, fmt.Errorf("%w: %s is larger than %d MB", ErrReadMarkdown, src, maxMarkdownSize>>20)
	}

	if dst == "" {
		dst = fileutil.ReplaceExtension(src, ".pdf")
	}
	if filepath.Clean(dst) == filepath.Clean(src) {
		return nil, fmt.Errorf("%w: output %s would overwrite the input", ErrWritePDF, dst)
	}

	return &Document{Source: src, Output: dst}, nil
}

// Text returns the document as UTF-8. Binary files fail with ErrNotText and
// files in a legacy encoding are transcoded.
func (d *Document) Text() (string, error) {
	d.once.Do(d.load)
	return d.text, d.err
}

// Charset reports the encoding Text decoded from. Empty before Text is called.
func (d *Document) Charset() string {
	return d.charset
}

// Dir is the directory relative images are resolved against.
func (d *Document) Dir() string {
	return filepath.Dir(d.Source)
}

// Title is the source file name without extension.
func (d *Document) Title() string {
	base := filepath.Base(d.Source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (d *Document) load() {
	data, err := os.ReadFile(d.Source) // #nosec G304 -- user-provided path
	if err != nil {
		d.err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return
	}
	// Blank files are valid documents; they render as one empty page.
	if len(strings.TrimSpace(string(data))) == 0 {
		d.text, d.charset = string(data), textenc.UTF8
		return
	}
	if err := textenc.Sniff(data); err != nil {
		d.err = fmt.Errorf("%s: %w", d.Source, err)
		return
	}
	d.text, d.charset = textenc.Decode(data)
}
