// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jaydendev/mdcard/internal/fileutil"
)

// ciVars are set by the CI providers whose runners commonly lack a sandbox.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// InContainer reports whether the process appears to run in a container.
func InContainer() bool {
	return fileutil.FileExists("/.dockerenv") || os.Getenv("container") != ""
}

// ForBrowserConnect returns hints for a browser that failed to start.
// getenv is os.Getenv in production; tests pass a map lookup.
func ForBrowserConnect(getenv func(string) string, inContainer bool) string {
	var hints []string

	inCI := false
	for _, v := range ciVars {
		if getenv(v) != "" {
			inCI = true
			break
		}
	}

	if (inCI || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	hints = append(hints, "run 'mdcard doctor' for a full report")

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for long documents or remote images, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the first user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/mdcard/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the available themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + " (see: mdcard themes)")
}

// ForClipboard returns hints for clipboard failures.
// On Linux the clipboard needs xclip, xsel or wl-copy on PATH.
func ForClipboard() string {
	if runtime.GOOS == "linux" {
		return format("install xclip, xsel or wl-clipboard, or use -o to write a file")
	}
	return format("use -o to write the text to a file instead")
}

// ForTerminalInput returns a hint when text is expected on stdin.
func ForTerminalInput() string {
	return format("pass a file, or pipe Markdown in: cat note.md | mdcard text")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
