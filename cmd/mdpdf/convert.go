package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
	"github.com/alnah/go-mdpdf/internal/logger"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput   = errors.New("no input file specified")
	ErrWriteHTML = errors.New("cannot write HTML")
)

// engineAuto selects the default engine order.
const engineAuto = "auto"

// conversionParams is everything runConvert needs after merging
// flags, environment and config file.
type conversionParams struct {
	input        string
	output       string
	style        string
	assetPath    string
	page         *mdpdf.PageSettings
	statusColors bool
	colors       map[string]mdpdf.ColorPair
	engines      []string // nil = mdpdf.DefaultEngines
	timeout      time.Duration
	html         bool
	htmlOnly     bool
}

// runConvert converts one Markdown file and prints a summary line.
func runConvert(ctx context.Context, args []string, f *convertFlags, env *Environment) error {
	if len(args) == 0 {
		return ErrNoInput
	}
	if len(args) > 2 {
		return fmt.Errorf("%w: unexpected arguments: %s", ErrInvalidFlag, strings.Join(args[2:], " "))
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildParams(args, f, envCfg, cfg)
	if err != nil {
		return err
	}

	log := newCLILogger(env, f.common).WithField("input", params.input)
	ctx = logger.WithLogger(ctx, log)

	return convertOne(ctx, params, f.common.quiet, env)
}

// loadConfig loads the config named by the flag, then MDPDF_CONFIG.
// Without either, defaults apply.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		var searched []string
		if !fileutil.IsFilePath(name) {
			searched = config.SearchPaths(name)
		}
		return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(searched))
	}
	return cfg, err
}

// mergeFlags overrides config values with explicitly set flags.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.assets.style != "" {
		cfg.CSS.Style = f.assets.style
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}
	if o := f.page.orientation(); o != "" {
		cfg.Page.Orientation = o
	}
	if f.status.enabled || f.status.custom != "" {
		cfg.StatusColors.Enabled = true
	}
}

// buildParams turns the merged configuration into conversion parameters.
func buildParams(args []string, f *convertFlags, envCfg *envConfig, cfg *config.Config) (*conversionParams, error) {
	p := &conversionParams{
		input:        args[0],
		style:        cfg.CSS.Style,
		assetPath:    cfg.Assets.BasePath,
		statusColors: cfg.StatusColors.Enabled,
		html:         f.outputMode.html,
		htmlOnly:     f.outputMode.htmlOnly,
	}
	if len(args) == 2 {
		p.output = args[1]
	}

	orientation, err := mdpdf.ParseOrientation(cfg.Page.Orientation)
	if err != nil {
		return nil, err
	}
	p.page = &mdpdf.PageSettings{
		Size:        strings.ToLower(cfg.Page.Size),
		Orientation: orientation,
		Margin:      cfg.Page.Margin,
	}

	p.colors, err = resolveColors(f.status.custom, cfg.StatusColors.Colors)
	if err != nil {
		return nil, err
	}

	p.engines, err = resolveEngines(f.render.engine, envCfg.Engine, cfg.Render.Engines)
	if err != nil {
		return nil, err
	}

	p.timeout, err = resolveTimeoutWithEnv(f.render.timeout, envCfg.Timeout, cfg.Render.Timeout)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// resolveColors merges --custom-colors over the config file colors.
func resolveColors(flagValue string, configColors map[string]string) (map[string]mdpdf.ColorPair, error) {
	colors, err := mdpdf.ColorOverridesFromMap(configColors)
	if err != nil {
		return nil, fmt.Errorf("statusColors.colors: %w%s", err, hints.ForColorSpec())
	}
	if flagValue == "" {
		return colors, nil
	}
	custom, err := mdpdf.ParseColorOverrides(flagValue)
	if err != nil {
		return nil, fmt.Errorf("--custom-colors: %w%s", err, hints.ForColorSpec())
	}
	maps.Copy(colors, custom)
	return colors, nil
}

// resolveEngines picks the engine list: flag > env > config.
// "auto" and an empty value mean the default order.
func resolveEngines(flagValue, envValue string, configValue []string) ([]string, error) {
	choice := strings.ToLower(strings.TrimSpace(flagValue))
	if choice == "" {
		choice = envValue
	}
	switch {
	case choice == engineAuto:
		return nil, nil
	case choice != "":
		if !validEngineChoice(choice) {
			return nil, fmt.Errorf("%w: --engine %q (use auto, chrome or fpdf)", ErrInvalidFlag, choice)
		}
		return []string{choice}, nil
	case len(configValue) > 0:
		engines := make([]string, len(configValue))
		for i, name := range configValue {
			engines[i] = strings.ToLower(name)
		}
		return engines, nil
	}
	return nil, nil
}

// validEngineChoice reports whether s is accepted by --engine.
func validEngineChoice(s string) bool {
	return s == engineAuto || slices.Contains(config.KnownEngines, s)
}

// newCLILogger builds the logger for one run. Warnings by default,
// debug with --verbose, errors only with --quiet.
func newCLILogger(env *Environment, f commonFlags) *logrus.Entry {
	level := "warn"
	switch {
	case f.verbose:
		level = "debug"
	case f.quiet:
		level = "error"
	}
	format := "text"
	if f.logJSON {
		format = "json"
	}
	return logrus.NewEntry(logger.New(env.Stderr, level, format))
}

// convertOne runs the library conversion and writes the outputs.
func convertOne(ctx context.Context, p *conversionParams, quiet bool, env *Environment) error {
	log := logger.G(ctx)
	start := env.Now()

	opts := []mdpdf.Option{
		mdpdf.WithStyle(p.style),
		mdpdf.WithAssetPath(p.assetPath),
	}
	if len(p.engines) > 0 {
		opts = append(opts, mdpdf.WithEngines(p.engines...))
	}
	if p.timeout > 0 {
		opts = append(opts, mdpdf.WithTimeout(p.timeout))
	}

	conv, err := mdpdf.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, mdpdf.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.ListStyles()))
		}
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			log.WithError(err).Warn("closing engines")
		}
	}()

	output := p.output
	if p.htmlOnly && output != "" && !strings.EqualFold(filepath.Ext(output), ".html") {
		output = fileutil.ReplaceExtension(output, ".html")
	}
	doc, err := mdpdf.LoadDocument(p.input, output)
	if err != nil {
		return err
	}
	htmlPath := fileutil.ReplaceExtension(doc.Output, ".html")

	res, err := conv.ConvertFile(ctx, doc, mdpdf.Input{
		Page:         p.page,
		StatusColors: p.statusColors,
		Colors:       p.colors,
		HTMLOnly:     p.htmlOnly,
	})
	if err != nil {
		return withHint(err)
	}

	log.WithFields(logrus.Fields{
		"tables":        res.Tables,
		"wide_tables":   res.WideTables,
		"page_breaks":   res.PageBreaks,
		"colored_cells": res.ColoredCells,
		"elapsed":       env.Now().Sub(start).Round(time.Millisecond),
	}).Debug("conversion finished")

	green := color.New(color.FgGreen)
	if p.html || p.htmlOnly {
		if err := fileutil.WriteFileAtomic(htmlPath, res.HTML, 0o644); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		}
		if !quiet {
			green.Fprintf(env.Stdout, "HTML created: %s (%d KB)\n", htmlPath, kilobytes(len(res.HTML)))
		}
	}
	if !p.htmlOnly && !quiet {
		green.Fprintf(env.Stdout, "PDF created: %s (%d KB) [engine: %s, orientation: %s, pages: %d]\n",
			doc.Output, kilobytes(len(res.PDF)), res.Engine, res.Orientation, res.Pages)
	}
	return nil
}

// withHint appends the hint matching err, if any.
func withHint(err error) error {
	switch {
	case errors.Is(err, mdpdf.ErrWritePDF):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	case errors.Is(err, mdpdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// kilobytes rounds n bytes up to whole kilobytes.
func kilobytes(n int) int {
	return (n + 1023) / 1024
}
