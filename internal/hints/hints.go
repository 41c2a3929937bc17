// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"

	"github.com/alnah/go-wiki2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// Getenv reads an environment variable.
type Getenv func(string) string

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect(getenv Getenv) string {
	var hints []string

	inCI := getenv("CI") != "" ||
		getenv("GITHUB_ACTIONS") != "" ||
		getenv("GITLAB_CI") != "" ||
		getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large wikis, use --timeout or WIKI2PDF_TIMEOUT")
}

// ForConfigNotFound returns hints for config file not found errors.
// The message lists the searched paths, comma separated; the first user
// config path found is suggested as a place to create the file.
func ForConfigNotFound(message string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range strings.Split(message, ", ") {
		if strings.Contains(p, "go-wiki2pdf") && !strings.Contains(p, " ") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForRootPage returns a hint for a root page that cannot be read.
func ForRootPage() string {
	return format("page paths are relative to the wiki directory unless they name an existing file")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
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
