package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"deob/internal/driver"
	"deob/internal/project"
)

// writeTree creates files (relative path -> content) under a fresh temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func defaultOptions() driver.Options {
	cfg := project.Default()
	return driver.Options{
		MaxDiagnostics: 32,
		Normalize:      cfg.Normalize,
		Format:         cfg.Format,
		Query:          cfg.Query,
		Jobs:           2,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
