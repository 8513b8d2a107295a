// Package testutil holds helpers shared by package tests
package testutil

import (
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/focusflow/internal/osutil"
)

// GoldenTest produces output to compare against testdata/<name>.golden.
type GoldenTest interface {
	Output() (output []byte, name string)
}

// CompareGoldenFile verifies that the output of an operation matches the
// golden file. Run tests with -update to rewrite the files.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: normalise line endings in golden files on Windows
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	output, name := tc.Output()

	g.Assert(t, name, output)
}
