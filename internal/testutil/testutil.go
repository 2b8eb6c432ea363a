// Package testutil provides testing utilities for modgen.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempConfig writes content to a config file in a fresh temporary directory
// and returns its path.
func TempConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := writeFile(path, content); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

// IsolateConfigDir points MODGEN_CONFIG_DIR at an empty temporary directory
// for the duration of the test and returns it.
func IsolateConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("MODGEN_CONFIG_DIR", dir)
	return dir
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// MinimalConfig is a valid config file fixing the seed and sample count.
const MinimalConfig = `size: 10
seed: 11
count: 3
limit: 1
`
