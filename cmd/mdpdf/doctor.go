package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// doctorTimeout bounds the fpdf self-test.
const doctorTimeout = 10 * time.Second

// selfTestMarkdown has one wide table so the self-test also exercises
// automatic landscape detection.
const selfTestMarkdown = `# mdpdf doctor

| Task | Owner | Status | Due |
|------|-------|--------|-----|
| Check | doctor | **DONE** | today |
`

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo   `json:"chrome"`
	Engines  []engineInfo `json:"engines"`
	SelfTest selfTestInfo `json:"self_test"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// engineInfo reports whether one PDF engine can be selected.
type engineInfo struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// selfTestInfo holds the result of rendering a small document with fpdf.
type selfTestInfo struct {
	OK          bool   `json:"ok"`
	Engine      string `json:"engine,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Pages       int    `json:"pages,omitempty"`
	Error       string `json:"error,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool     `json:"temp_writable"`
	Styles       []string `json:"styles"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "unknown doctor argument: %s\n", arg)
			return ExitUsage
		}
	}

	result := runDoctor(context.Background())

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEngines(result)
	checkSelfTest(ctx, result)
	checkEnvironment(result)
	checkSystem(result)
	checkStyles(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation. A missing browser is a
// warning: the fpdf engine still produces PDFs.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; falling back to fpdf. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from LookPath or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEngines asks every known engine whether it could be selected.
func checkEngines(result *doctorResult) {
	available := 0
	for _, name := range config.KnownEngines {
		info := engineInfo{Name: name}
		e, err := mdpdf.NewEngine(name, doctorTimeout)
		if err == nil {
			err = e.Available()
			_ = e.Close()
		}
		if err == nil {
			info.Available = true
			available++
		} else {
			info.Reason = err.Error()
		}
		result.Engines = append(result.Engines, info)
	}
	if available == 0 {
		result.Errors = append(result.Errors,
			"No PDF engine available"+strings.ReplaceAll(hints.ForEngineInstall(config.KnownEngines), "\n  hint:", ";"))
	}
}

// checkSelfTest converts a small document with fpdf and validates the PDF.
func checkSelfTest(ctx context.Context, result *doctorResult) {
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	conv, err := mdpdf.NewConverter(mdpdf.WithEngines(mdpdf.EngineFPDF), mdpdf.WithTimeout(doctorTimeout))
	if err != nil {
		result.SelfTest.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("Self-test setup failed: %v", err))
		return
	}
	defer func() { _ = conv.Close() }()

	res, err := conv.Convert(ctx, mdpdf.Input{Markdown: selfTestMarkdown, StatusColors: true})
	if err != nil {
		result.SelfTest.Error = err.Error()
		result.Errors = append(result.Errors, fmt.Sprintf("Self-test conversion failed: %v", err))
		return
	}

	result.SelfTest = selfTestInfo{
		OK:          true,
		Engine:      res.Engine,
		Orientation: string(res.Orientation),
		Pages:       res.Pages,
	}
	if res.Orientation != mdpdf.OrientationLandscape {
		result.SelfTest.OK = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Self-test expected landscape for a 4-column table, got %s", res.Orientation))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Chrome refuses to start sandboxed as root in most containers.
	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MDPDF_CONTAINER") == "1" {
		return true, "MDPDF_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for Chrome's HTML handoff.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "mdpdf-doctor-*")
	if err == nil {
		_, err = f.WriteString("test")
		err = errors.Join(err, f.Close(), os.Remove(f.Name()))
	}
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", filepath.Clean(tmpDir)))
		return
	}
	result.System.TempWritable = true
}

// checkStyles verifies the embedded themes load.
func checkStyles(result *doctorResult) {
	if _, err := assets.LoadStyle(assets.DefaultStyleName); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Default style %q cannot be loaded: %v", assets.DefaultStyleName, err))
	}
	result.System.Styles = assets.ListStyles()
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdpdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Engines")
	for _, e := range r.Engines {
		if e.Available {
			fmt.Fprintf(w, "  [OK] %s: available\n", e.Name)
		} else {
			fmt.Fprintf(w, "  [WARN] %s: %s\n", e.Name, e.Reason)
		}
	}
	if r.SelfTest.OK {
		fmt.Fprintf(w, "  [OK] Self-test: %s, %s, %d page(s)\n", r.SelfTest.Engine, r.SelfTest.Orientation, r.SelfTest.Pages)
	} else {
		fmt.Fprintln(w, "  [ERROR] Self-test failed")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintf(w, "  [OK] Styles: %s\n", strings.Join(r.System.Styles, ", "))
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
