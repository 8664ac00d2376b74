package mdpdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFInfo summarises a rendered document.
type PDFInfo struct {
	Pages    int
	WidthPt  float64 // first page
	HeightPt float64 // first page
}

// Landscape reports whether the first page is wider than tall.
func (i PDFInfo) Landscape() bool {
	return i.WidthPt > i.HeightPt
}

var pdfcpuSetup sync.Once

// InspectPDF parses and validates data and reports its page count and first
// page size. Anything pdfcpu cannot read fails with ErrInvalidPDF.
func InspectPDF(data []byte) (PDFInfo, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return PDFInfo{}, fmt.Errorf("%w: missing %%PDF header", ErrInvalidPDF)
	}

	// pdfcpu would otherwise create a config directory under $HOME.
	pdfcpuSetup.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return PDFInfo{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if ctx.PageCount < 1 {
		return PDFInfo{}, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}

	info := PDFInfo{Pages: ctx.PageCount}
	dims, err := ctx.PageDims()
	if err != nil {
		return PDFInfo{}, fmt.Errorf("%w: reading page size: %v", ErrInvalidPDF, err)
	}
	if len(dims) > 0 {
		info.WidthPt, info.HeightPt = dims[0].Width, dims[0].Height
	}
	return info, nil
}
