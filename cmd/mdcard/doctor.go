package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/assets"
	"github.com/jaydendev/mdcard/internal/config"
	"github.com/jaydendev/mdcard/internal/fileutil"
	"github.com/jaydendev/mdcard/internal/pipeline"
)

// chromeVersionTimeout bounds the "chrome --version" probe.
const chromeVersionTimeout = 5 * time.Second

// Overall doctor verdicts.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the JSON document printed by "doctor --json".
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Assets   assetsInfo `json:"assets"`
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
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
	Config        string `json:"mdcard_config,omitempty"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	Clipboard    bool `json:"clipboard"`
}

// assetsInfo reports which themes a card export could use.
type assetsInfo struct {
	Path     string   `json:"path,omitempty"`
	Themes   []string `json:"themes"`
	Broken   []string `json:"broken,omitempty"`
	Template bool     `json:"template"`
}

// doctorCheck inspects one part of the host and records its findings.
type doctorCheck func(*doctorResult)

// runDoctorCmd executes the doctor command and returns an exit code.
// Warnings still exit 0; only errors make the host "not ready".
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(flags.assetPath)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check against the current host.
func runDoctor(assetPath string) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
			Config:     os.Getenv("MDCARD_CONFIG"),
		},
		Assets: assetsInfo{Path: assetPath},
	}

	checks := []doctorCheck{
		checkChrome,
		checkEnvironment,
		checkSystem,
		checkClipboard,
		checkConfig,
		checkAssets,
	}
	for _, check := range checks {
		check(result)
	}
	finalizeStatus(result)

	return result
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// finalizeStatus derives the overall status from errors and warnings.
func finalizeStatus(result *doctorResult) {
	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
}

// checkChrome locates the browser used for PNG export.
// ROD_BROWSER_BIN wins over rod's own lookup.
func checkChrome(result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			result.fail("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if !fileutil.FileExists(path) {
		result.fail("Chrome not found at %s", path)
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = path
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	ctx, cancel := context.WithTimeout(context.Background(), chromeVersionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		result.warn("Could not get Chrome version: %v", err)
		return
	}
	result.Chrome.Version = strings.TrimSpace(string(out))
}

// ciVars are the variables CI providers set on their runners.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// checkEnvironment flags container and CI hosts, where Chrome's sandbox
// usually cannot start.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// containerProbes are tried in order; the first hit names the signal.
var containerProbes = []func() string{
	func() string {
		if os.Getenv("MDCARD_CONTAINER") == "1" {
			return "MDCARD_CONTAINER=1"
		}
		return ""
	},
	func() string {
		if _, err := os.Stat("/.dockerenv"); err == nil {
			return "/.dockerenv"
		}
		return ""
	},
	func() string {
		if v := os.Getenv("container"); v != "" {
			return "container=" + v
		}
		return ""
	},
	func() string {
		if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
			return "KUBERNETES_SERVICE_HOST"
		}
		return ""
	},
}

// isContainer reports whether the process runs in a container, and which
// signal gave it away.
func isContainer() (bool, string) {
	for _, probe := range containerProbes {
		if hint := probe(); hint != "" {
			return true, hint
		}
	}
	return false, ""
}

// checkSystem writes a throwaway card page where the exporter writes its own.
func checkSystem(result *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("<!DOCTYPE html>", "html")
	if err != nil {
		result.fail("Temp directory not writable: %s", os.TempDir())
		return
	}
	cleanup()
	result.System.TempWritable = true
}

// checkClipboard reports whether "text --copy" can reach a system clipboard.
// A missing clipboard is a warning: text output still works.
func checkClipboard(result *doctorResult) {
	result.System.Clipboard = !clipboard.Unsupported
	if !result.System.Clipboard {
		result.warn("No clipboard utility found; text --copy will fail (install xclip, xsel or wl-clipboard)")
	}
}

// checkConfig loads the file named by MDCARD_CONFIG, if any.
// Without it, commands run on defaults and there is nothing to check.
func checkConfig(result *doctorResult) {
	if result.Env.Config == "" {
		return
	}
	if _, err := config.LoadConfig(result.Env.Config); err != nil {
		result.fail("MDCARD_CONFIG=%s: %v", result.Env.Config, err)
	}
}

// checkAssets loads every theme and the card template the way an export
// would, so broken custom themes show up before a batch run.
func checkAssets(result *doctorResult) {
	loader, err := mdcard.NewAssetLoader(result.Assets.Path)
	if err != nil {
		result.fail("Asset path: %v", err)
		return
	}

	tmpl, err := loader.LoadTemplate(assets.DefaultTemplateName)
	if err == nil {
		_, err = pipeline.NewCardAssembly(tmpl)
	}
	if err != nil {
		result.fail("Card template: %v", err)
	} else {
		result.Assets.Template = true
	}

	names, err := loader.ListThemes()
	if err != nil {
		result.fail("Listing themes: %v", err)
		return
	}
	for _, name := range names {
		theme, err := loader.LoadTheme(name)
		if err == nil {
			_, err = pipeline.HighlightCSS(theme.CodeStyle)
		}
		if err != nil {
			result.Assets.Broken = append(result.Assets.Broken, name)
			result.warn("Theme %s unusable: %v", name, err)
			continue
		}
		result.Assets.Themes = append(result.Assets.Themes, name)
	}
}

// doctorReport prints indented, tagged status lines.
type doctorReport struct {
	w io.Writer
}

func (p doctorReport) section(title string) {
	fmt.Fprintln(p.w, title)
}

func (p doctorReport) line(tag, format string, args ...any) {
	fmt.Fprintf(p.w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
}

func (p doctorReport) check(ok bool, okText, failTag, failText string) {
	if ok {
		p.line("OK", "%s", okText)
		return
	}
	p.line(failTag, "%s", failText)
}

func (p doctorReport) end() {
	fmt.Fprintln(p.w)
}

// statusText is the closing line for each verdict.
var statusText = map[string]string{
	statusReady:    "Ready to export cards",
	statusWarnings: "Ready with warnings",
	statusErrors:   "Not ready (see errors above)",
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	p := doctorReport{w: w}
	p.section("mdcard doctor")
	p.end()

	p.section("Chrome/Chromium")
	if r.Chrome.Found {
		p.line("OK", "Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			p.line("OK", "Version: %s", r.Chrome.Version)
		}
		p.line("OK", "%s", sandboxText(r.Chrome.Sandbox))
	} else {
		p.line("ERROR", "Not found")
	}
	p.end()

	p.section("Environment")
	p.line("OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		p.line("OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		p.line("OK", "CI: detected")
	}
	if r.Env.Config != "" {
		p.line("OK", "Config: %s", r.Env.Config)
	}
	p.end()

	p.section("System")
	p.check(r.System.TempWritable, "Temp directory: writable", "ERROR", "Temp directory: not writable")
	p.check(r.System.Clipboard, "Clipboard: available", "WARN", "Clipboard: unavailable")
	p.end()

	p.section("Assets")
	p.check(r.Assets.Template, "Card template: ok", "ERROR", "Card template: unusable")
	if len(r.Assets.Themes) > 0 {
		p.line("OK", "Themes: %s", strings.Join(r.Assets.Themes, ", "))
	}
	if len(r.Assets.Broken) > 0 {
		p.line("WARN", "Broken themes: %s", strings.Join(r.Assets.Broken, ", "))
	}
	p.end()

	for _, group := range []struct {
		title, tag string
		items      []string
	}{
		{"Warnings:", "WARN", r.Warnings},
		{"Errors:", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		p.section(group.title)
		for _, item := range group.items {
			p.line(group.tag, "%s", item)
		}
		p.end()
	}

	if text, ok := statusText[r.Status]; ok {
		fmt.Fprintf(w, "Status: %s\n", text)
	}
}

func sandboxText(enabled bool) string {
	if enabled {
		return "Sandbox: enabled"
	}
	return "Sandbox: disabled (ROD_NO_SANDBOX=1)"
}
