package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	wiki2pdf "github.com/alnah/go-wiki2pdf"
	"github.com/alnah/go-wiki2pdf/internal/hints"
	"github.com/alnah/go-wiki2pdf/internal/wiki"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Wiki     *wikiInfo  `json:"wiki,omitempty"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	CI         bool   `json:"ci"`
	NoSandbox  string `json:"rod_no_sandbox"`
	BrowserBin string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// wikiInfo describes the wiki directory given to doctor.
type wikiInfo struct {
	Root      string `json:"root"`
	Pages     int    `json:"pages"`
	HomePage  string `json:"home_page,omitempty"`
	CustomCSS bool   `json:"custom_css"`
}

// homePageNames are the page names Gollum treats as the wiki front page.
var homePageNames = []string{"Home", "README", "index"}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, deps *Dependencies) int {
	jsonOutput := false
	wikiDir := ""
	for _, arg := range args {
		switch {
		case arg == "--json":
			jsonOutput = true
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(deps.Stderr, "error: unknown doctor flag: %s\n", arg)
			return ExitUsage
		default:
			wikiDir = arg
		}
	}

	result := runDoctor(deps, wikiDir)

	if jsonOutput {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(deps.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(deps *Dependencies, wikiDir string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  deps.getenv("ROD_NO_SANDBOX"),
			BrowserBin: deps.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, deps)
	checkEnvironment(result, deps)
	checkSystem(result)
	if wikiDir != "" {
		checkWiki(result, wikiDir)
	}

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, deps *Dependencies) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = deps.lookBrowser()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- path comes from the user's own environment
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, deps *Dependencies) {
	result.Env.Container = hints.IsInContainer() || deps.getenv("KUBERNETES_SERVICE_HOST") != ""

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if deps.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies the temp directory is writable; HTML is staged there
// before printing.
func checkSystem(result *doctorResult) {
	f, err := os.CreateTemp("", "wiki2pdf-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", os.TempDir()))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	result.System.TempWritable = true
}

// checkWiki indexes the wiki directory and looks for a front page.
func checkWiki(result *doctorResult, wikiDir string) {
	resolver, err := wiki.NewResolver(wikiDir)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Wiki directory: %v", err))
		return
	}

	info := &wikiInfo{Root: resolver.Root(), Pages: len(resolver.Pages())}
	result.Wiki = info

	if info.Pages == 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("No markdown pages found under %s", info.Root))
		return
	}

	for _, name := range homePageNames {
		if path, err := resolver.ResolvePage(name); err == nil {
			info.HomePage = path
			break
		}
	}
	if info.HomePage == "" {
		result.Warnings = append(result.Warnings,
			"No Home page found; pass the root page path explicitly")
	}

	if _, err := os.Stat(filepath.Join(info.Root, wiki2pdf.CustomCSSFile)); err == nil {
		info.CustomCSS = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "wiki2pdf doctor")
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
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
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
	fmt.Fprintln(w)

	if r.Wiki != nil {
		fmt.Fprintln(w, "Wiki")
		fmt.Fprintf(w, "  [OK] Root: %s\n", r.Wiki.Root)
		fmt.Fprintf(w, "  [OK] Pages: %d\n", r.Wiki.Pages)
		if r.Wiki.HomePage != "" {
			fmt.Fprintf(w, "  [OK] Home page: %s\n", r.Wiki.HomePage)
		}
		if r.Wiki.CustomCSS {
			fmt.Fprintf(w, "  [OK] %s: found\n", wiki2pdf.CustomCSSFile)
		}
		fmt.Fprintln(w)
	}

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
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
