package mdpdf

import (
	"fmt"
	"strings"
	"time"
)

// Orientation is the page orientation of the generated PDF.
type Orientation string

// Orientation values. OrientationAuto defers to the table heuristic.
const (
	OrientationAuto      Orientation = "auto"
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// ParseOrientation accepts "", auto, portrait and landscape (case-insensitive).
// The empty string maps to OrientationAuto.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return OrientationAuto, nil
	case OrientationAuto, OrientationPortrait, OrientationLandscape:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q (must be auto, portrait, or landscape)", ErrInvalidOrientation, s)
	}
}

// Page size constants.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// Margin bounds in centimetres.
const (
	MinMargin     = 0.25
	MaxMargin     = 5.0
	DefaultMargin = 1.5
)

// paperSizesMM holds portrait width and height in millimetres.
var paperSizesMM = map[string][2]float64{
	PageSizeA4:     {210, 297},
	PageSizeLetter: {215.9, 279.4},
	PageSizeLegal:  {215.9, 355.6},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string      // "a4", "letter", "legal"
	Orientation Orientation // "auto" (or empty), "portrait", "landscape"
	Margin      float64     // centimetres, applied to all sides
}

// DefaultPageSettings returns A4, automatic orientation and 1.5cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationAuto,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizesMM[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (must be a4, letter, or legal)", ErrInvalidPageSize, p.Size)
	}

	if _, err := ParseOrientation(string(p.Orientation)); err != nil {
		return err
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f cm)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// RenderPage is the fully resolved page geometry handed to an engine.
// Width and height already account for orientation.
type RenderPage struct {
	Size        string
	Orientation Orientation // never auto
	WidthMM     float64
	HeightMM    float64
	MarginMM    float64
}

// newRenderPage resolves p against a concrete orientation.
func newRenderPage(p *PageSettings, o Orientation) RenderPage {
	size := strings.ToLower(p.Size)
	dims := paperSizesMM[size]
	w, h := dims[0], dims[1]
	if o == OrientationLandscape {
		w, h = h, w
	}
	return RenderPage{
		Size:        size,
		Orientation: o,
		WidthMM:     w,
		HeightMM:    h,
		MarginMM:    p.Margin * 10,
	}
}

// Landscape reports whether the page is wider than tall.
func (r RenderPage) Landscape() bool {
	return r.Orientation == OrientationLandscape
}

// Input contains conversion parameters.
type Input struct {
	Markdown     string               // Markdown content (required)
	Title        string               // <title> of the intermediate HTML (optional)
	SourceDir    string               // base directory for relative images (optional)
	CSS          string               // extra CSS applied after the theme (optional)
	Page         *PageSettings        // page settings (optional, nil = defaults)
	StatusColors bool                 // color bold keywords in Status columns
	Colors       map[string]ColorPair // overrides merged over DefaultColors
	HTMLOnly     bool                 // stop after styling, skip engines
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML         []byte      // styled intermediate HTML
	PDF          []byte      // nil when Input.HTMLOnly is set
	Engine       string      // engine that produced PDF
	Orientation  Orientation // resolved orientation
	Pages        int         // page count reported by the PDF validator
	Tables       int         // tables found by the scanner
	WideTables   int         // tables at or above LandscapeColumnThreshold columns
	ColoredCells int         // status cells colored
	PageBreaks   int         // h2 headings given a page break
}

// RenderConfig is the resolved configuration of one conversion.
// No automatic values remain once it has been built.
type RenderConfig struct {
	Orientation  Orientation
	StatusColors bool
	Palette      *Palette
	Page         RenderPage
	CSS          string
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout     time.Duration
	styleInput  string
	assetPath   string
	engineNames []string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// DefaultEngines is the engine preference order used when none is configured.
var DefaultEngines = []string{EngineChrome, EngineFPDF}

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdpdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the theme by name or by path to a .css file.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = nameOrPath
	}
}

// WithAssetPath adds a directory searched for styles before the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithEngines sets the ordered engine preference by name.
func WithEngines(names ...string) Option {
	return func(c *Converter) {
		c.cfg.engineNames = names
	}
}
