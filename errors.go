package mdpdf

import (
	"errors"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/textenc"
)

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrReadMarkdown = errors.New("cannot read markdown source")
	ErrNotText      = textenc.ErrNotText

	// Conversion errors.
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrHTMLStyling    = errors.New("HTML styling failed")

	// Engine selection errors. ErrEngineUnavailable is the only error that
	// moves selection on to the next engine.
	ErrEngineUnavailable = errors.New("PDF engine unavailable")
	ErrNoEngine          = errors.New("no PDF engine available")
	ErrUnknownEngine     = errors.New("unknown PDF engine")

	// Rendering errors. Never retried on another engine.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("failed to load page")
	ErrInvalidPDF     = errors.New("rendered PDF failed validation")

	// Output errors.
	ErrWritePDF = errors.New("cannot write PDF")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Color errors.
	ErrInvalidColor          = errors.New("invalid CSS color")
	ErrInvalidColorOverrides = errors.New("invalid color overrides")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
