package mdpdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/process"
)

// mmPerInch converts engine geometry to Chrome's inch-based print options.
const mmPerInch = 25.4

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page RenderPage) ([]byte, error)
	Close() error
}

// chromeEngine renders through an installed Chrome or Chromium. It never
// downloads a browser: when none is installed it reports itself unavailable.
type chromeEngine struct {
	timeout  time.Duration
	lookPath func() (string, bool)
	bin      string
	renderer pdfRenderer
}

func newChromeEngine(timeout time.Duration) *chromeEngine {
	return &chromeEngine{
		timeout:  timeout,
		lookPath: launcher.LookPath,
	}
}

func (e *chromeEngine) Name() string { return EngineChrome }

// Available resolves the browser binary from ROD_BROWSER_BIN or the usual
// install locations.
func (e *chromeEngine) Available() error {
	if e.renderer != nil {
		return nil
	}
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		if !fileutil.FileExists(bin) {
			return fmt.Errorf("%w: chrome: ROD_BROWSER_BIN=%s does not exist", ErrEngineUnavailable, bin)
		}
		e.bin = bin
		return nil
	}
	bin, found := e.lookPath()
	if !found {
		return fmt.Errorf("%w: chrome: no Chrome or Chromium installation found", ErrEngineUnavailable)
	}
	e.bin = bin
	return nil
}

// Render writes the document to a temp file so relative resources resolve
// and prints it with Chrome.
func (e *chromeEngine) Render(ctx context.Context, htmlContent string, page RenderPage) ([]byte, error) {
	if e.renderer == nil {
		if e.bin == "" {
			if err := e.Available(); err != nil {
				return nil, err
			}
		}
		e.renderer = newRodRenderer(e.bin, e.timeout)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, tmpPath, page)
}

// Close releases browser resources.
func (e *chromeEngine) Close() error {
	if e.renderer != nil {
		return e.renderer.Close()
	}
	return nil
}

// rodRenderer implements pdfRenderer using go-rod.
type rodRenderer struct {
	bin      string
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// newRodRenderer creates a rodRenderer for the given browser binary.
func newRodRenderer(bin string, timeout time.Duration) *rodRenderer {
	return &rodRenderer{bin: bin, timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New().Bin(r.bin).Headless(true)

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || hints.IsInContainer() {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		process.KillProcessGroup(l.PID())
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	return nil
}

// Close closes the browser and kills whatever is left of its process group.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, page RenderPage) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	p, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrPageLoad, err)
	}
	defer func() { _ = p.Close() }()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.Context(ctx).PDF(buildPrintOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions maps the resolved page to Chrome print options. The
// injected @page rule says the same thing; setting both keeps the output
// correct for stylesheets that drop it.
func buildPrintOptions(page RenderPage) *proto.PagePrintToPDF {
	margin := page.MarginMM / mmPerInch
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(page.WidthMM / mmPerInch),
		PaperHeight:     floatPtr(page.HeightMM / mmPerInch),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

var (
	_ Engine      = (*chromeEngine)(nil)
	_ pdfRenderer = (*rodRenderer)(nil)
)
