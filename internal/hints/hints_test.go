package hints

// Notes:
// - ForBrowserConnect tests swap the package-level IsInContainer and cannot
//   use t.Parallel(); the environment itself is injected.

import (
	"path/filepath"
	"strings"
	"testing"
)

func fakeEnv(vars map[string]string) Getenv {
	return func(k string) string { return vars[k] }
}

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantSandbox bool
		wantBin     bool
	}{
		{"in CI", false, map[string]string{"CI": "true"}, true, true},
		{"in GitHub Actions", false, map[string]string{"GITHUB_ACTIONS": "true"}, true, true},
		{"in Docker", true, nil, true, true},
		{"sandbox already disabled", true, map[string]string{"ROD_NO_SANDBOX": "1"}, false, true},
		{"browser bin set", false, map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"}, false, false},
		{"local machine", false, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)

			hint := ForBrowserConnect(fakeEnv(tt.env))

			if got := strings.Contains(hint, "ROD_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("ROD_NO_SANDBOX suggested = %v, want %v (hint %q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "ROD_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("ROD_BROWSER_BIN suggested = %v, want %v (hint %q)", got, tt.wantBin, hint)
			}
			if hint != "" && !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q missing prefix", hint)
			}
		})
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("/home/ada/.config", "go-wiki2pdf", "team.yaml")
	msg := "config file not found: tried team.yaml, team.yml, " + userPath + ", " + userPath[:len(userPath)-4] + "yml"

	hint := ForConfigNotFound(msg)
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
	if !strings.Contains(hint, "or create "+userPath) {
		t.Errorf("hint %q should suggest %s", hint, userPath)
	}

	if hint := ForConfigNotFound("config file not found: ./missing.yaml"); strings.Contains(hint, "or create") {
		t.Errorf("hint %q should not suggest a user path", hint)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{ForTimeout(), ForRootPage(), ForOutputDirectory()} {
		if !strings.HasPrefix(hint, "\n  hint: ") || len(hint) <= len("\n  hint: ") {
			t.Errorf("hint %q malformed", hint)
		}
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
}
