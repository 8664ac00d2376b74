package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdpdf/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names. Anything else in first position is
// treated as the input file of an implicit convert.
var commands = []string{"convert", "doctor", "completion", "version", "help"}

func main() {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, in which case the
	// runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if strings.HasPrefix(cmd, "-") || isSourceFile(cmd) || looksLikeMarkdown(cmd) {
			// mdpdf <input> [output.pdf] [flags]
			cmd, rest = "convert", args[1:]
		} else {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			printError(env, "completion", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "mdpdf %s\n", Version)
		return ExitSuccess
	default: // help
		return runHelp(rest, env)
	}
}

// runConvertCmd parses flags, wires cancellation and runs the conversion.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env, "flags", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		printError(env, stageOf(err), err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printError writes "error: <stage>: <message>" in red on a terminal.
func printError(env *Environment, stage string, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(env.Stderr, "error: ")
	fmt.Fprintf(env.Stderr, "%s: %v\n", stage, err)
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}

// isSourceFile reports whether s names an existing regular file, whatever
// its extension.
func isSourceFile(s string) bool {
	info, err := os.Stat(s)
	return err == nil && info.Mode().IsRegular()
}

// looksLikeMarkdown reports whether s has a Markdown file extension.
func looksLikeMarkdown(s string) bool {
	switch strings.ToLower(filepath.Ext(s)) {
	case ".md", ".markdown", ".mdown", ".mkd", ".txt":
		return true
	}
	return false
}

// resolveTimeoutWithEnv picks the render timeout: flag > env > config.
// Zero means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrInvalidFlag, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidFlag, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		d, err := time.ParseDuration(configValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: render.timeout %q", config.ErrInvalidValue, configValue)
		}
		return d, nil
	}
	return 0, nil
}
