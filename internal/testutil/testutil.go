// Package testutil provides small filesystem helpers for tests that read
// crontab files; the crontab reader tests use them.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTempCrontab writes content to a temp file and returns its path.
// The file is removed automatically when t's test completes.
func CreateTempCrontab(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.cron")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp crontab: %v", err)
	}
	return path
}

// LoadTestCrontab reads a fixture file from testdata/crontab, relative to
// the module root.
func LoadTestCrontab(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "crontab", name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return string(data)
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
