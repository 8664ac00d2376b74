package mdpdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/logger"
	"github.com/alnah/go-mdpdf/internal/pipeline"
	"github.com/alnah/go-mdpdf/internal/textenc"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.HTMLStyler           = (*pipeline.Styler)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// Converter orchestrates the markdown-to-PDF conversion pipeline.
// Create with NewConverter(), use Convert() or ConvertFile(), and Close() when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	theme         string
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	styler        pipeline.HTMLStyler
	cssInjector   pipeline.CSSInjector
	engines       []Engine
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithStyle, WithEngines).
// Returns error if the style cannot be loaded or an engine name is unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		styler:        &pipeline.Styler{},
		cssInjector:   &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.theme, err = resolver.ResolveStyle(c.cfg.styleInput)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", c.cfg.styleInput, err)
	}

	// Engines may already be injected (e.g., by tests).
	if c.engines == nil {
		names := c.cfg.engineNames
		if len(names) == 0 {
			names = DefaultEngines
		}
		for _, name := range names {
			e, err := NewEngine(name, c.cfg.timeout)
			if err != nil {
				return nil, err
			}
			c.engines = append(c.engines, e)
		}
	}

	return c, nil
}

// withEngineList injects engine instances, bypassing name resolution.
func withEngineList(engines ...Engine) Option {
	return func(c *Converter) {
		c.engines = engines
	}
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, engine selection and rendering are skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}
	log := logger.G(ctx)

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	rc, tables := c.resolve(mdContent, input)
	_, wide := detectOrientation(tables)
	log.WithFields(logrus.Fields{
		"tables":      len(tables),
		"wide_tables": wide,
		"orientation": rc.Orientation,
		"forced":      input.Page != nil && input.Page.Orientation != "" && input.Page.Orientation != OrientationAuto,
	}).Debug("orientation resolved")

	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent, input.Title)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	styleOpts := pipeline.StyleOptions{
		PageBreaks: true,
		SourceDir:  input.SourceDir,
	}
	if rc.StatusColors {
		styleOpts.StatusColors = paletteColors{p: rc.Palette}
	}
	htmlContent, stats, err := c.styler.Style(ctx, htmlContent, styleOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTMLStyling, err)
	}
	log.WithFields(logrus.Fields{
		"page_breaks":   stats.PageBreaks,
		"colored_cells": stats.ColoredCells,
		"images":        stats.RewrittenSrcs,
	}).Debug("HTML styled")

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, rc.CSS)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res := &ConvertResult{
		HTML:         []byte(htmlContent),
		Orientation:  rc.Orientation,
		Tables:       len(tables),
		WideTables:   wide,
		ColoredCells: stats.ColoredCells,
		PageBreaks:   stats.PageBreaks,
	}

	if input.HTMLOnly {
		return res, nil
	}

	engine, err := SelectEngine(ctx, c.engines)
	if err != nil {
		return nil, err
	}

	// A render failure is final: falling back would hide a real problem
	// behind a lower fidelity document.
	pdfBytes, err := engine.Render(ctx, htmlContent, rc.Page)
	if err != nil {
		return nil, fmt.Errorf("rendering with %s: %w", engine.Name(), err)
	}

	info, err := InspectPDF(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("rendering with %s: %w", engine.Name(), err)
	}
	log.WithFields(logrus.Fields{
		"engine": engine.Name(),
		"bytes":  len(pdfBytes),
		"pages":  info.Pages,
	}).Debug("PDF rendered")

	res.PDF = pdfBytes
	res.Engine = engine.Name()
	res.Pages = info.Pages
	return res, nil
}

// ConvertFile loads doc, converts it and atomically writes the PDF to
// doc.Output. Markdown, SourceDir and an empty Title in input are filled
// from doc. Nothing is written when any stage fails or HTMLOnly is set.
func (c *Converter) ConvertFile(ctx context.Context, doc *Document, input Input) (*ConvertResult, error) {
	text, err := doc.Text()
	if err != nil {
		return nil, err
	}
	input.Markdown = text
	input.SourceDir = doc.Dir()
	if input.Title == "" {
		input.Title = doc.Title()
	}
	if cs := doc.Charset(); cs != textenc.UTF8 {
		logger.G(ctx).WithField("charset", cs).Info("source decoded to UTF-8")
	}

	res, err := c.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	if input.HTMLOnly {
		return res, nil
	}

	if err := fileutil.WriteFileAtomic(doc.Output, res.PDF, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return res, nil
}

// Close releases engine resources (headless Chrome browser).
func (c *Converter) Close() error {
	return closeEngines(c.engines)
}

// resolve builds the RenderConfig for input. It never returns automatic
// values: orientation is decided here, once, before any rendering.
func (c *Converter) resolve(markdown string, input Input) (RenderConfig, []pipeline.TableInfo) {
	page := DefaultPageSettings()
	if input.Page != nil {
		p := *input.Page
		if p.Size == "" {
			p.Size = page.Size
		}
		if p.Margin == 0 {
			p.Margin = page.Margin
		}
		page = &p
	}

	tables := pipeline.ScanTables(markdown)
	orientation, _ := ParseOrientation(string(page.Orientation))
	if orientation == OrientationAuto {
		orientation, _ = detectOrientation(tables)
	}

	rp := newRenderPage(page, orientation)
	return RenderConfig{
		Orientation:  orientation,
		StatusColors: input.StatusColors,
		Palette:      NewPaletteBuilder().Override(input.Colors).Build(),
		Page:         rp,
		CSS:          buildCSS(c.theme, rp, input.CSS),
	}, tables
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
// Both paths converge here, ensuring all inputs are validated before processing.
func validateInput(input Input) error {
	if input.Page != nil {
		p := *input.Page
		if p.Size == "" {
			p.Size = PageSizeA4
		}
		if p.Margin == 0 {
			p.Margin = DefaultMargin
		}
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for k, c := range input.Colors {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty keyword", ErrInvalidColorOverrides)
		}
		if err := ValidateColor(c.Background); err != nil {
			return fmt.Errorf("%w: keyword %q: %w", ErrInvalidColorOverrides, k, err)
		}
		if err := ValidateColor(c.Text); err != nil {
			return fmt.Errorf("%w: keyword %q: %w", ErrInvalidColorOverrides, k, err)
		}
	}
	return nil
}
