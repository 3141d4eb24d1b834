package fsmtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTemplateDir materializes files (name -> content) under a fresh temp
// directory and returns both the directory and a name -> full-path map, so
// clitable tests can exercise name-based template lookup without
// hardcoding a directory layout.
func WriteTemplateDir(t *testing.T, files map[string]string) (string, map[string]string) {
	t.Helper()

	dir := t.TempDir()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths[name] = path
	}
	return dir, paths
}
