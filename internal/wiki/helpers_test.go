package wiki

import (
	"os"
	"path/filepath"
	"testing"
)

// writeWiki creates files (relative path -> content) under a fresh
// directory and returns it.
func writeWiki(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll() error = %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}
	return root
}

func mustResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	r, err := NewResolver(root)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

var osReadFile = os.ReadFile
