package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/logger"
)

// Engine names.
const (
	EngineChrome = "chrome"
	EngineFPDF   = "fpdf"
)

// Engine renders a styled HTML document to PDF bytes.
//
// Available reports whether the engine can run at all on this machine. It
// returns nil or an error wrapping ErrEngineUnavailable; only the latter lets
// selection move on to the next engine. Render failures are final.
type Engine interface {
	Name() string
	Available() error
	Render(ctx context.Context, htmlContent string, page RenderPage) ([]byte, error)
	Close() error
}

// NewEngine builds an engine by name.
func NewEngine(name string, timeout time.Duration) (Engine, error) {
	switch strings.ToLower(name) {
	case EngineChrome:
		return newChromeEngine(timeout), nil
	case EngineFPDF:
		return newFPDFEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, name, EngineChrome, EngineFPDF)
	}
}

// SelectEngine returns the first available engine in preference order.
// When none is available the error wraps ErrNoEngine, lists every reason
// and carries install guidance for each engine that was tried.
func SelectEngine(ctx context.Context, engines []Engine) (Engine, error) {
	log := logger.G(ctx)

	var reasons *multierror.Error
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		err := e.Available()
		if err == nil {
			log.WithField("engine", e.Name()).Debug("engine selected")
			return e, nil
		}
		if !errors.Is(err, ErrEngineUnavailable) {
			return nil, fmt.Errorf("checking engine %s: %w", e.Name(), err)
		}
		log.WithField("engine", e.Name()).WithError(err).Warn("engine unavailable, trying next")
		reasons = multierror.Append(reasons, err)
		names = append(names, e.Name())
	}

	if reasons == nil {
		return nil, fmt.Errorf("%w: no engines configured", ErrNoEngine)
	}
	reasons.ErrorFormat = listReasons
	return nil, fmt.Errorf("%w: %w%s", ErrNoEngine, reasons.ErrorOrNil(), hints.ForEngineInstall(names))
}

// listReasons formats aggregated availability errors on one line each.
func listReasons(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// closeEngines closes every engine and joins the failures.
func closeEngines(engines []Engine) error {
	var result *multierror.Error
	for _, e := range engines {
		if err := e.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing %s: %w", e.Name(), err))
		}
	}
	return result.ErrorOrNil()
}
