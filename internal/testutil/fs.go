package testutil

import (
	"testing"

	"github.com/spf13/afero"
)

// NewMemFs returns an in-memory filesystem seeded with files, keyed by path.
func NewMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("seed %s: %v", path, err)
		}
	}
	return fs
}

// ReadFile returns the content of path on fs, failing the test if it cannot
// be read.
func ReadFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
