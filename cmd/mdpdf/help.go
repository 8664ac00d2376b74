package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf [convert] <input.md> [output.pdf] [flags]")
	fmt.Fprintln(w, "       mdpdf <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert a markdown file to PDF (default)")
	fmt.Fprintln(w, "  doctor      Check engines and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf [convert] <input.md> [output.pdf] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a markdown file to PDF. Pages switch to landscape when a")
	fmt.Fprintln(w, "table has 4 or more columns, and every h2 after the first starts")
	fmt.Fprintln(w, "a new page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input.md     Markdown file to convert (any existing file is accepted)")
	fmt.Fprintln(w, "  output.pdf   Destination (default: input with .pdf extension)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --landscape           Force landscape orientation")
	fmt.Fprintln(w, "      --portrait            Force portrait orientation")
	fmt.Fprintln(w, "      --margin <cm>         Margin in centimetres (0.25-5.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Status Colors:")
	fmt.Fprintln(w, "      --status-colors       Color bold keywords in Status columns")
	fmt.Fprintln(w, "      --custom-colors <j>   Keyword colors as JSON, e.g.")
	fmt.Fprintln(w, `                            '{"BLOCKED":"#f8d7da:#721c24"}'`)
	fmt.Fprintln(w, "                            Implies --status-colors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name or .css file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom style directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>          Engine: auto, chrome, fpdf (default: auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show pipeline details")
	fmt.Fprintln(w, "      --log-json            Log as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPDF_CONFIG, MDPDF_STYLE, MDPDF_ENGINE, MDPDF_TIMEOUT,")
	fmt.Fprintln(w, "  MDPDF_PAGE_SIZE, MDPDF_STATUS_COLORS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit Codes:")
	fmt.Fprintln(w, "  0 success, 1 general, 2 usage or config, 3 I/O, 4 rendering")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, PDF engines, container settings and the temp directory.")
	fmt.Fprintln(w, "Renders a small test document with the built-in fpdf engine.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
