// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// RequireShell skips the test when no POSIX shell is available to run
// toolchain scripts.
func RequireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// FailMarker makes the fake translator reject a source file containing it.
const FailMarker = "fail"

// WriteToolchain writes a fake toolchain home. The translator copies each
// source to <stem>.s in the working directory, the assembler copies the
// assembly to the object path and the linker concatenates the objects.
func WriteToolchain(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	scripts := map[string]string{
		"compile.sh":  "src=\"$1\"\ngrep -q " + FailMarker + " \"$src\" && { echo \"rejected $src\" >&2; exit 1; }\ncp \"$src\" \"$(basename \"$src\" .wacc).s\"\n",
		"assemble.sh": "cp \"$1\" \"$2\"\n",
		"link.sh":     "out=\"$1\"\nshift\ncat \"$@\" > \"$out\"\n",
	}
	for name, body := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(home, name), []byte(body), 0o755))
	}
	return home
}
