package main

import (
	"context"
	"errors"
	"os"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// Exit codes for the mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source unreadable, destination unwritable
	ExitRender  = 4 // No engine, or the engine failed
)

// renderErrors map to ExitRender.
var renderErrors = []error{
	mdpdf.ErrNoEngine,
	mdpdf.ErrEngineUnavailable,
	mdpdf.ErrBrowserConnect,
	mdpdf.ErrPageLoad,
	mdpdf.ErrPDFGeneration,
	mdpdf.ErrInvalidPDF,
}

// ioErrors map to ExitIO.
var ioErrors = []error{
	os.ErrNotExist,
	os.ErrPermission,
	mdpdf.ErrReadMarkdown,
	mdpdf.ErrNotText,
	mdpdf.ErrWritePDF,
	ErrWriteHTML,
}

// usageErrors map to ExitUsage.
var usageErrors = []error{
	config.ErrConfigNotFound,
	config.ErrEmptyConfigName,
	config.ErrConfigParse,
	config.ErrFieldTooLong,
	config.ErrInvalidValue,
	mdpdf.ErrInvalidPageSize,
	mdpdf.ErrInvalidOrientation,
	mdpdf.ErrInvalidMargin,
	mdpdf.ErrInvalidColor,
	mdpdf.ErrInvalidColorOverrides,
	mdpdf.ErrStyleNotFound,
	mdpdf.ErrInvalidAssetPath,
	mdpdf.ErrUnknownEngine,
	ErrInvalidFlag,
	ErrInvalidEnv,
	ErrNoInput,
	ErrUnsupportedShell,
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case isAny(err, renderErrors):
		return ExitRender
	case isAny(err, ioErrors):
		return ExitIO
	case isAny(err, usageErrors):
		return ExitUsage
	}
	return ExitGeneral
}

// stageOf names the pipeline stage an error comes from, for the
// "error: <stage>: <message>" line.
func stageOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidFlag), errors.Is(err, ErrNoInput):
		return "usage"
	case errors.Is(err, ErrInvalidEnv),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidValue):
		return "config"
	case errors.Is(err, mdpdf.ErrReadMarkdown),
		errors.Is(err, mdpdf.ErrNotText):
		return "load"
	case errors.Is(err, mdpdf.ErrHTMLConversion), errors.Is(err, mdpdf.ErrHTMLStyling):
		return "html"
	case errors.Is(err, mdpdf.ErrStyleNotFound), errors.Is(err, mdpdf.ErrInvalidAssetPath):
		return "style"
	case errors.Is(err, mdpdf.ErrNoEngine),
		errors.Is(err, mdpdf.ErrEngineUnavailable),
		errors.Is(err, mdpdf.ErrUnknownEngine):
		return "engine"
	case isAny(err, renderErrors), errors.Is(err, context.DeadlineExceeded):
		return "render"
	case errors.Is(err, mdpdf.ErrWritePDF), errors.Is(err, ErrWriteHTML):
		return "write"
	case errors.Is(err, mdpdf.ErrInvalidPageSize),
		errors.Is(err, mdpdf.ErrInvalidOrientation),
		errors.Is(err, mdpdf.ErrInvalidMargin),
		errors.Is(err, mdpdf.ErrInvalidColor),
		errors.Is(err, mdpdf.ErrInvalidColorOverrides):
		return "options"
	}
	return "convert"
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
