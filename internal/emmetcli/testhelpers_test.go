// Summary: Test helpers for emmet CLI tests (stdin swapping).
package emmetcli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setStdin sets os.Stdin from a string and returns a restore func and reader.
func setStdin(t *testing.T, content string) (func(), *os.File) {
	t.Helper()
	fpath := filepath.Join(t.TempDir(), "stdin.txt")
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0o600))
	f, err := os.Open(fpath)
	require.NoError(t, err)
	old := os.Stdin
	os.Stdin = f
	restore := func() {
		f.Close()
		os.Stdin = old
	}
	return restore, f
}
