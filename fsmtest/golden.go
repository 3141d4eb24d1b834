// Package fsmtest collects the fixture and golden-file helpers shared by
// textfsm, texttable, and clitable's test suites, in the spirit of the
// teacher's sqltest package: one place for the boilerplate every package's
// tests would otherwise duplicate.
package fsmtest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/stretchr/testify/require"
)

// update, set via `go test ./... -update`, rewrites golden files with the
// actual output instead of comparing against them.
var update = flag.Bool("update", false, "rewrite golden files with actual output")

// GoldenDir is the conventional location for golden fixtures, relative to
// the package under test: "testdata".
const GoldenDir = "testdata"

// AssertGolden compares actual against the contents of testdata/name,
// rewriting the file when -update is passed.
func AssertGolden(t *testing.T, name string, actual string) {
	t.Helper()

	path := filepath.Join(GoldenDir, name)
	if *update {
		require.NoError(t, os.MkdirAll(GoldenDir, 0o755))
		require.NoError(t, os.WriteFile(path, []byte(actual), 0o644))
		return
	}

	want, err := os.ReadFile(path)
	require.NoErrorf(t, err, "golden file %s missing; run tests with -update", path)
	require.Equal(t, string(want), actual)
}

// ReadFixture reads a template/input file from testdata, failing the test
// with its path on error rather than a bare os error.
func ReadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(GoldenDir, name)
	data, err := os.ReadFile(path)
	require.NoErrorf(t, err, "reading fixture %s", path)
	return string(data)
}

// Dump renders v the way a developer would reach for %#v, but readable:
// used by tests that want to print a compiled Template or FSM result on
// failure.
func Dump(v any) string {
	return repr.String(v, repr.Indent("  "))
}
