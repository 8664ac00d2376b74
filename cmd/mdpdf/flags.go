package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag reports a flag value or combination that cannot be used.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size      string
	landscape bool
	portrait  bool
	margin    float64
}

// statusFlags holds status cell coloring flags.
type statusFlags struct {
	enabled bool
	custom  string // serialized keyword -> color spec object
}

// assetFlags holds style and asset location flags.
type assetFlags struct {
	style     string // name or path of a .css file
	assetPath string // directory searched before embedded styles
}

// renderFlags holds engine selection flags.
type renderFlags struct {
	engine  string // auto, chrome or fpdf
	timeout string
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // write HTML alongside the PDF
	htmlOnly bool // write HTML only, skip PDF
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	page       pageFlags
	status     statusFlags
	assets     assetFlags
	render     renderFlags
	outputMode outputFlags
}

// orientation returns the forced orientation, "" when neither flag is set.
func (p pageFlags) orientation() string {
	switch {
	case p.landscape:
		return "landscape"
	case p.portrait:
		return "portrait"
	}
	return ""
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline details")
	fs.BoolVar(&f.logJSON, "log-json", false, "log as JSON (with --verbose)")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: a4, letter, legal")
	fs.BoolVar(&f.landscape, "landscape", false, "force landscape orientation")
	fs.BoolVar(&f.portrait, "portrait", false, "force portrait orientation")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in cm (0.25-5.0)")
}

// addStatusFlags adds status coloring flags to a FlagSet.
func addStatusFlags(fs *flag.FlagSet, f *statusFlags) {
	fs.BoolVar(&f.enabled, "status-colors", false, "color bold keywords in Status columns")
	fs.StringVar(&f.custom, "custom-colors", "", `keyword colors as JSON, e.g. '{"BLOCKED":"#f8d7da:#721c24"}' (implies --status-colors)`)
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom style directory")
}

// addRenderFlags adds engine flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engine, "engine", "", "PDF engine: auto, chrome, fpdf")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// newConvertFlagSet registers every convert flag on a fresh FlagSet.
// Completion reads the same set, so flags are declared only here.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addStatusFlags(fs, &f.status)
	addAssetFlags(fs, &f.assets)
	addRenderFlags(fs, &f.render)
	addOutputFlags(fs, &f.outputMode)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if err := f.validate(); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validate rejects flag combinations.
func (f *convertFlags) validate() error {
	if f.page.landscape && f.page.portrait {
		return fmt.Errorf("%w: --landscape and --portrait are mutually exclusive", ErrInvalidFlag)
	}
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlag)
	}
	if f.outputMode.html && f.outputMode.htmlOnly {
		return fmt.Errorf("%w: --html and --html-only are mutually exclusive", ErrInvalidFlag)
	}
	return nil
}
