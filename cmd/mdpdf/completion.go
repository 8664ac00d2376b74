package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --page-size
	Short    string   // -p (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size": {Values: []string{"a4", "letter", "legal"}},
	"engine":    {Values: []string{"auto", "chrome", "fpdf"}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"style":  {FileGlob: "*.css"},

	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet so they never drift.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}))

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert a markdown file to PDF",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check engines and environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output as JSON"}},
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	switch shell {
	case ShellBash:
		writeBash(bw, getCommands())
	case ShellZsh:
		writeZsh(bw, getCommands())
	case ShellFish:
		writeFish(bw, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdpdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdpdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdpdf completion fish > ~/.config/fish/completions/mdpdf.fish")
}

// commandNames returns the names of cmds separated by spaces.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords lists every spelling of the flags, e.g. "-p --page-size".
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.yaml,*.yml" into "yaml|yml".
func globExtensions(glob string) string {
	parts := strings.Split(glob, ",")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(strings.TrimSpace(p), "*.")
	}
	return strings.Join(parts, "|")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# bash completion for mdpdf")
	fmt.Fprintln(w, "_mdpdf_completions() {")
	fmt.Fprintln(w, `    local cur prev cmd`)
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -X '!*.@(md|markdown)' -- \"${cur}\") )\n", commandNames(cmds))
	fmt.Fprintln(w, "        return 0")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)

	convert := cmds[0]
	fmt.Fprintln(w, `    case "${prev}" in`)
	for _, f := range convert.Flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern = "-" + f.Short + "|" + pattern
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				pattern, strings.Join(f.Values, " "))
		case flagFile:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )\n            return 0\n            ;;\n",
				pattern, globExtensions(f.FileGlob))
		case flagDir:
			fmt.Fprintf(w, "        %s)\n            COMPREPLY=( $(compgen -d -- \"${cur}\") )\n            return 0\n            ;;\n", pattern)
		case flagString, flagFloat:
			fmt.Fprintf(w, "        %s)\n            return 0\n            ;;\n", pattern)
		}
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w)

	fmt.Fprintln(w, `    case "${cmd}" in`)
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			fmt.Fprintln(w, "        completion)\n            COMPREPLY=( $(compgen -W \"bash zsh fish\" -- \"${cur}\") )\n            ;;")
		case c.Name == "help":
			fmt.Fprintf(w, "        help)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            ;;\n", commandNames(cmds))
		case len(c.Flags) > 0:
			fmt.Fprintf(w, "        %s)\n            if [[ \"${cur}\" == -* ]]; then\n                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n",
				c.Name, flagWords(c.Flags))
			if c.TakesFiles {
				fmt.Fprintf(w, "            else\n                COMPREPLY=( $(compgen -f -X '!*.@(%s|pdf)' -- \"${cur}\") )\n", globExtensions(c.FilePattern))
			}
			fmt.Fprintln(w, "            fi\n            ;;")
		}
	}
	// Implicit convert: mdpdf report.md --landscape
	fmt.Fprintf(w, "        *)\n            if [[ \"${cur}\" == -* ]]; then\n                COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            else\n                COMPREPLY=( $(compgen -f -X '!*.@(%s|pdf)' -- \"${cur}\") )\n            fi\n            ;;\n",
		flagWords(convert.Flags), globExtensions(convert.FilePattern))
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "shopt -s extglob")
	fmt.Fprintln(w, "complete -o filenames -F _mdpdf_completions mdpdf")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes characters that end an _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// zshFlagSpecs returns one _arguments spec per flag.
func zshFlagSpecs(flags []flagDef) []string {
	var specs []string
	for _, f := range flags {
		action := ""
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
		case flagFile:
			action = fmt.Sprintf(`:file:_files -g "*.(%s)"`, globExtensions(f.FileGlob))
		case flagDir:
			action = ":directory:_files -/"
		case flagString, flagFloat:
			action = ":" + f.Long + ":"
		}
		desc := zshEscape(f.Desc)
		if f.Short != "" {
			specs = append(specs, fmt.Sprintf(`'(-%s --%s)'{-%s,--%s}'[%s]%s'`, f.Short, f.Long, f.Short, f.Long, desc, action))
		} else {
			specs = append(specs, fmt.Sprintf(`'--%s[%s]%s'`, f.Long, desc, action))
		}
	}
	return specs
}

func writeZsh(w io.Writer, cmds []commandDef) {
	convert := cmds[0]
	mdGlob := globExtensions(convert.FilePattern)

	fmt.Fprintln(w, "#compdef mdpdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_mdpdf_convert() {")
	fmt.Fprintln(w, "    _arguments -s \\")
	for _, spec := range zshFlagSpecs(convert.Flags) {
		fmt.Fprintf(w, "        %s \\\n", spec)
	}
	fmt.Fprintf(w, "        '1:markdown file:_files -g \"*.(%s)\"' \\\n", mdGlob)
	fmt.Fprintln(w, "        '2:output file:_files -g \"*.pdf\"'")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_mdpdf() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe -t commands 'mdpdf command' commands")
	fmt.Fprintf(w, "        _files -g \"*.(%s)\"\n", mdGlob)
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case ${words[2]} in")
	fmt.Fprintln(w, "        convert)")
	fmt.Fprintln(w, "            shift words; (( CURRENT-- ))")
	fmt.Fprintln(w, "            _mdpdf_convert")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "        doctor)")
	fmt.Fprintln(w, "            _arguments '--json[output as JSON]'")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "        completion)")
	fmt.Fprintln(w, "            _values 'shell' bash zsh fish")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "        help)")
	fmt.Fprintln(w, "            _describe -t commands 'mdpdf command' commands")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "        version)")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "        *)")
	fmt.Fprintln(w, "            _mdpdf_convert")
	fmt.Fprintln(w, "            ;;")
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `_mdpdf "$@"`)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func writeFish(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# fish completion for mdpdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "function __fish_mdpdf_needs_command")
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -eq 1")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "function __fish_mdpdf_using_command")
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -gt 1; and contains -- $cmd[2] $argv")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "function __fish_mdpdf_converting")
	fmt.Fprintf(w, "    not __fish_mdpdf_needs_command; and not __fish_mdpdf_using_command %s\n",
		strings.TrimPrefix(commandNames(cmds), "convert "))
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "complete -c mdpdf -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c mdpdf -n __fish_mdpdf_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	fmt.Fprintln(w, "complete -c mdpdf -n __fish_mdpdf_needs_command -F")
	fmt.Fprintln(w)

	for _, f := range cmds[0].Flags {
		line := "complete -c mdpdf -n __fish_mdpdf_converting"
		if f.Short != "" {
			line += " -s " + f.Short
		}
		line += " -l " + f.Long
		switch f.Type {
		case flagEnum:
			line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
		case flagFile:
			line += " -r -F"
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagString, flagFloat:
			line += " -x"
		}
		fmt.Fprintf(w, "%s -d %s\n", line, fishQuote(f.Desc))
	}
	fmt.Fprintln(w, "complete -c mdpdf -n __fish_mdpdf_converting -F")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "complete -c mdpdf -n '__fish_mdpdf_using_command doctor' -l json -d 'output as JSON'")
	fmt.Fprintln(w, "complete -c mdpdf -n '__fish_mdpdf_using_command completion' -x -a 'bash zsh fish'")
	fmt.Fprintf(w, "complete -c mdpdf -n '__fish_mdpdf_using_command help' -x -a %s\n", fishQuote(commandNames(cmds)))
}
